package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Instances held
// by the cart are denormalized copies captured at add time; the remote
// catalog owns the live record.
type Product struct {
	ID       string
	Name     string
	Brand    string
	Category string
	Price    decimal.Decimal
	Sizes    []string
	Colors   []string
	Image    Image
}

// Image holds responsive image URLs for a product.
type Image struct {
	Thumbnail string
	Mobile    string
	Tablet    string
	Desktop   string
}

// Variant is the size/color sub-selection a shopper makes before adding a
// product to the cart.
type Variant struct {
	Size  string
	Color string
}

// IsZero reports whether no variant option was selected.
func (v Variant) IsZero() bool {
	return v.Size == "" && v.Color == ""
}
