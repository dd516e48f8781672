// Package cart holds the local view of what the shopper intends to buy,
// independent of network availability. All transitions are synchronous and
// total is always derived from the current lines, never stored separately.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
)

// InvalidQuantityError indicates an add with a non-positive quantity.
type InvalidQuantityError struct {
	ProductID string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.ProductID)
}

// Line is a single product-quantity-price tuple within the cart. Name, image,
// price and variant are snapshots captured when the line was first added and
// are not re-derived from the live catalog.
type Line struct {
	ProductID string
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int
	Variant   product.Variant
}

// Subtotal returns price × quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is an ordered list of lines, insertion order = add order.
// A line is identified by product id alone: adding the same product again
// increments the existing line's quantity, whatever variant was selected,
// and the first-add snapshot wins.
type State struct {
	Items []Line
}

// Add merges qty into an existing line with the same product id, or appends
// a new line snapshotting the product's current price and the selected
// variant. qty must be positive.
func (s *State) Add(p product.Product, v product.Variant, qty int) error {
	if qty <= 0 {
		return &InvalidQuantityError{ProductID: p.ID}
	}

	for i := range s.Items {
		if s.Items[i].ProductID == p.ID {
			s.Items[i].Quantity += qty
			return nil
		}
	}

	s.Items = append(s.Items, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Image:     p.Image.Thumbnail,
		Price:     p.Price,
		Quantity:  qty,
		Variant:   v,
	})
	return nil
}

// Remove deletes the line matching productID. Absent ids are a no-op, not
// an error.
func (s *State) Remove(productID string) {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the line's quantity to an absolute value. qty <= 0
// behaves as Remove. Absent ids are a no-op.
func (s *State) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		s.Remove(productID)
		return
	}
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (s *State) Clear() {
	s.Items = nil
}

// Empty reports whether the cart has no lines.
func (s State) Empty() bool {
	return len(s.Items) == 0
}

// Count returns the total number of units across all lines.
func (s State) Count() int {
	n := 0
	for _, l := range s.Items {
		n += l.Quantity
	}
	return n
}

// Total recomputes the cart total as the sum of price × quantity over all
// lines, rounded to 2 decimal places.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.Items {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

// Find returns the line for productID, or nil when absent.
func (s State) Find(productID string) *Line {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state, so callers can hold a snapshot
// that later mutations do not touch.
func (s State) Clone() State {
	if len(s.Items) == 0 {
		return State{}
	}
	items := make([]Line, len(s.Items))
	copy(items, s.Items)
	return State{Items: items}
}
