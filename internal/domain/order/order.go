// Package order holds the client-side projection of server-owned orders.
// An order is immutable here except for status transitions pushed by the
// backend and the client-initiated cancel.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

// Sentinel errors for client-side order rules.
var (
	ErrNotFound      = errors.New("order not found")
	ErrNotCancelable = errors.New("order can no longer be cancelled")
	ErrAccessDenied  = errors.New("order belongs to another user")
)

// Status is the order lifecycle state reported by the backend.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a wire status value. Unknown values are rejected
// once, at the API boundary.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// CanCancel reports whether a client-initiated cancel is still legal.
// Only pending and processing orders may be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusProcessing
}

// Terminal reports whether no further transition is defined.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Item is a product-quantity-price snapshot within a placed order.
type Item struct {
	ProductID string
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
}

// Order is a read-only projection of a server-created order.
type Order struct {
	ID             string
	UserID         string
	TrackingNumber string
	Items          []Item
	Total          decimal.Decimal
	Shipping       user.Address
	PaymentMethod  string
	PaymentStatus  string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OwnedBy reports whether the order belongs to the given user. A mismatch is
// a terminal access-denied display, not retryable.
func (o *Order) OwnedBy(userID string) bool {
	return o.UserID != "" && o.UserID == userID
}

// Tracking returns the server-issued tracking number, deriving one from the
// order id when the server omitted it.
func (o *Order) Tracking() string {
	if o.TrackingNumber != "" {
		return o.TrackingNumber
	}
	return DeriveTracking(o.ID)
}

// DeriveTracking builds a display tracking identifier from an order id:
// "TRK-" plus the uppercased last 8 characters.
func DeriveTracking(orderID string) string {
	suffix := orderID
	if len(suffix) > 8 {
		suffix = suffix[len(suffix)-8:]
	}
	return "TRK-" + strings.ToUpper(suffix)
}
