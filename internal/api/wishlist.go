package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/jx"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
)

// WishlistItem is one saved product. Product is nil when the referenced
// product was deleted from the catalog; the client treats the reference as
// dangling and offers removal.
type WishlistItem struct {
	ID        string
	ProductID string
	Product   *product.Product
}

// Dangling reports whether the referenced product no longer exists.
func (w WishlistItem) Dangling() bool {
	return w.Product == nil
}

// WishlistService manages the caller's saved products.
type WishlistService service

// List fetches the wishlist.
func (s *WishlistService) List(ctx context.Context) ([]WishlistItem, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/wishlist", nil)
	if err != nil {
		return nil, err
	}

	var out []WishlistItem
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		it, err := decodeWishlistItem(d)
		if err != nil {
			return err
		}
		out = append(out, it)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Add saves a product to the wishlist.
func (s *WishlistService) Add(ctx context.Context, productID string) (*WishlistItem, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(productID) })
	})

	body, err := s.c.do(ctx, http.MethodPost, "/wishlist", e.Bytes())
	if err != nil {
		return nil, err
	}

	var it WishlistItem
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		it, derr = decodeWishlistItem(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &it, nil
}

// Remove deletes a wishlist entry by its own id.
func (s *WishlistService) Remove(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(id), nil)
	return err
}

func decodeWishlistItem(d *jx.Decoder) (WishlistItem, error) {
	var it WishlistItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			it.ID, err = d.Str()
		case "product_id":
			it.ProductID, err = d.Str()
		case "product":
			if d.Next() == jx.Null {
				return d.Null()
			}
			var p product.Product
			if p, err = decodeProduct(d); err == nil {
				it.Product = &p
			}
		default:
			err = d.Skip()
		}
		return err
	})
	return it, err
}
