// Package store is the explicit state container for the storefront: the
// authoritative local cart, the session, and the remote-synced collections.
// There is no ambient singleton; whatever composes the UI layer receives a
// *Store and talks to it through typed commands and selectors.
package store

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/order"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

// ErrNotSignedIn guards operations that require an authenticated session.
var ErrNotSignedIn = errors.New("not signed in")

// Store holds all local commerce state. Commands are applied atomically:
// the mutex makes each mutation a single indivisible step, and the cart is
// persisted before the command returns.
type Store struct {
	client    *api.Client
	snapshots storage.Store

	mu      sync.Mutex
	cart    cart.State
	version uint64
	session user.Session

	Products      *Collection[product.Product]
	Brands        *Collection[api.Brand]
	Categories    *Collection[api.Category]
	Orders        *Collection[order.Order]
	Wishlist      *Collection[api.WishlistItem]
	Notifications *Collection[api.Notification]
	Reviews       *Collection[api.Review]
}

// New hydrates a Store from the persisted snapshots. Missing or corrupt
// snapshots degrade to empty state; corruption is logged, never propagated.
func New(ctx context.Context, client *api.Client, snapshots storage.Store) *Store {
	s := &Store{
		client:    client,
		snapshots: snapshots,

		Products:      NewCollection(func(p product.Product) string { return p.ID }),
		Brands:        NewCollection(func(b api.Brand) string { return b.ID }),
		Categories:    NewCollection(func(c api.Category) string { return c.ID }),
		Orders:        NewCollection(func(o order.Order) string { return o.ID }),
		Wishlist:      NewCollection(func(w api.WishlistItem) string { return w.ID }),
		Notifications: NewCollection(func(n api.Notification) string { return n.ID }),
		Reviews:       NewCollection(func(r api.Review) string { return r.ID }),
	}
	s.hydrate(ctx)
	return s
}

func (s *Store) hydrate(ctx context.Context) {
	lg := zctx.From(ctx)

	snap, err := s.snapshots.ReadCart(ctx)
	switch {
	case err == nil:
		s.cart = snap.State
		s.version = snap.Version
	case errors.Is(err, storage.ErrNoSnapshot):
		// First run or a cleared cart; both start empty.
	default:
		lg.Warn("Discarding unreadable cart snapshot", zap.Error(err))
	}

	sess, err := s.snapshots.ReadSession(ctx)
	switch {
	case err == nil:
		s.session = *sess
		s.client.SetToken(sess.Token)
	case errors.Is(err, storage.ErrNoSnapshot):
	default:
		lg.Warn("Discarding unreadable session snapshot", zap.Error(err))
	}
}

// mutateCart applies fn to the cart under the lock, then persists the new
// snapshot with a bumped version.
func (s *Store) mutateCart(ctx context.Context, fn func(*cart.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(&s.cart); err != nil {
		return err
	}
	s.version++
	snap := &storage.CartSnapshot{Version: s.version, State: s.cart.Clone()}
	if err := s.snapshots.WriteCart(ctx, snap); err != nil {
		return errors.Wrap(err, "persist cart")
	}
	return nil
}

// AddItem merges qty of the product into the cart and persists.
func (s *Store) AddItem(ctx context.Context, p product.Product, v product.Variant, qty int) error {
	return s.mutateCart(ctx, func(c *cart.State) error {
		return c.Add(p, v, qty)
	})
}

// RemoveItem deletes the product's line and persists. Absent ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	return s.mutateCart(ctx, func(c *cart.State) error {
		c.Remove(productID)
		return nil
	})
}

// UpdateQuantity sets an absolute quantity; qty <= 0 removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	return s.mutateCart(ctx, func(c *cart.State) error {
		c.SetQuantity(productID, qty)
		return nil
	})
}

// ClearCart empties the cart and removes the persisted entry entirely, so a
// reload is indistinguishable from a first run.
func (s *Store) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	s.version++
	if err := s.snapshots.DeleteCart(ctx); err != nil {
		return errors.Wrap(err, "remove cart snapshot")
	}
	return nil
}

// Reorder re-adds every line of a past order to the cart through the same
// add operation, preserving quantities. Prices are the order's snapshots;
// any drift from the live catalog is caught at the next checkout attempt.
func (s *Store) Reorder(ctx context.Context, o order.Order) error {
	return s.mutateCart(ctx, func(c *cart.State) error {
		for _, it := range o.Items {
			p := product.Product{
				ID:    it.ProductID,
				Name:  it.Name,
				Price: it.Price,
				Image: product.Image{Thumbnail: it.Image},
			}
			if err := c.Add(p, product.Variant{}, it.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// Cart returns a copy of the current cart state.
func (s *Store) Cart() cart.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// CartTotal returns the derived cart total.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// Session returns the current session projection.
func (s *Store) Session() user.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Authenticated reports whether a signed-in session is present.
func (s *Store) Authenticated() bool {
	return s.Session().Authenticated()
}

// Client exposes the backend handle for operations that bypass the
// container (uploads, customization previews, contact).
func (s *Store) Client() *api.Client {
	return s.client
}

func (s *Store) setSession(ctx context.Context, sess user.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = sess
	s.client.SetToken(sess.Token)
	if err := s.snapshots.WriteSession(ctx, sess); err != nil {
		return errors.Wrap(err, "persist session")
	}
	return nil
}

// Logout clears the session locally and removes its persisted snapshot.
// The cart is kept: shopping intent survives sign-out.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = user.Session{}
	s.client.SetToken("")
	if err := s.snapshots.DeleteSession(ctx); err != nil {
		return errors.Wrap(err, "remove session snapshot")
	}
	return nil
}
