// Package checkout drives the place-order flow: a short-lived state machine
// created per attempt, fed by the store's cart and session, that ends either
// placed or back on the form with the server's message.
package checkout

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/store"
)

// ErrEmptyCart rejects checkout before any network call when there is
// nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// Phase is the checkout lifecycle position.
type Phase string

const (
	PhaseFilling    Phase = "filling"
	PhaseSubmitting Phase = "submitting"
	PhasePlaced     Phase = "placed"
)

// Form is what the shopper edits before submitting: the shipping destination
// and the chosen payment method.
type Form struct {
	Shipping      user.Address
	PaymentMethod string
}

// Confirmation is the snapshot shown after a successful submission. Items
// and total are captured from the cart as it was at submit time, since the
// cart itself is cleared immediately after.
type Confirmation struct {
	OrderID        string
	TrackingNumber string
	Items          []cart.Line
	Total          decimal.Decimal
}

// Checkout is one attempt at placing an order. It never mutates the cart
// except for the single clear after the server confirms.
type Checkout struct {
	store *store.Store

	mu           sync.Mutex
	phase        Phase
	form         Form
	confirmation *Confirmation
	submitErr    string
}

// Begin starts a checkout for the signed-in user. The shipping form is
// prefilled once, preferring the saved address with preferredAddressID, then
// the default address, then the bare profile fields. The prefill is never
// re-applied over later edits.
func Begin(s *store.Store, preferredAddressID string) (*Checkout, error) {
	if !s.Authenticated() {
		return nil, store.ErrNotSignedIn
	}
	if s.Cart().Empty() {
		return nil, ErrEmptyCart
	}

	u := s.Session().User
	return &Checkout{
		store: s,
		phase: PhaseFilling,
		form: Form{
			Shipping:      u.ResolveShipping(preferredAddressID),
			PaymentMethod: "cod",
		},
	}, nil
}

// Phase returns the current lifecycle position.
func (c *Checkout) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Form returns the current form contents.
func (c *Checkout) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetForm replaces the form. Edits are only legal while filling.
func (c *Checkout) SetForm(f Form) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseFilling {
		return &PhaseError{Op: "edit form", Phase: c.phase}
	}
	c.form = f
	return nil
}

// Confirmation returns the placed-order snapshot, or nil before submission
// succeeds.
func (c *Checkout) Confirmation() *Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmation == nil {
		return nil
	}
	cp := *c.confirmation
	return &cp
}

// Err returns the display message of the last failed submission, empty when
// none failed.
func (c *Checkout) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Submit validates the form and sends the order. On success the cart is
// cleared and the checkout is placed; on failure it returns to filling with
// the server message, leaving cart and form intact.
func (c *Checkout) Submit(ctx context.Context) (*Confirmation, error) {
	c.mu.Lock()
	if c.phase != PhaseFilling {
		phase := c.phase
		c.mu.Unlock()
		return nil, &PhaseError{Op: "submit", Phase: phase}
	}
	form := c.form
	c.phase = PhaseSubmitting
	c.submitErr = ""
	c.mu.Unlock()

	if fields := Validate(form); len(fields) > 0 {
		c.backToFilling("")
		return nil, &InvalidFormError{Fields: fields}
	}

	snapshot := c.store.Cart()
	if snapshot.Empty() {
		c.backToFilling("")
		return nil, ErrEmptyCart
	}

	req := api.OrderReq{
		Shipping:      form.Shipping,
		PaymentMethod: form.PaymentMethod,
	}
	for _, l := range snapshot.Items {
		req.Items = append(req.Items, api.OrderReqItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Price,
		})
	}

	o, err := c.store.Client().Orders.Create(ctx, req)
	if err != nil {
		c.backToFilling(api.Message(err))
		return nil, err
	}

	conf := Confirmation{
		OrderID:        o.ID,
		TrackingNumber: o.Tracking(),
		Items:          snapshot.Items,
		Total:          snapshot.Total(),
	}

	if err := c.store.ClearCart(ctx); err != nil {
		// The order exists server-side, so the placement stands even when
		// the local snapshot could not be removed.
		zctx.From(ctx).Warn("clear cart after placement",
			zap.String("order_id", o.ID), zap.Error(err))
	}

	c.mu.Lock()
	c.phase = PhasePlaced
	c.confirmation = &conf
	c.mu.Unlock()
	return &conf, nil
}

// backToFilling reopens the form after a failed submission attempt.
func (c *Checkout) backToFilling(msg string) {
	c.mu.Lock()
	c.phase = PhaseFilling
	c.submitErr = msg
	c.mu.Unlock()
}
