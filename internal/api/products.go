package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/jx"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

// ProductsService reads the remote catalog.
type ProductsService service

// ProductQuery narrows a catalog list fetch.
type ProductQuery struct {
	Category string
	Brand    string
	Search   string
	Page     int
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ProductPage is one server page of the catalog.
type ProductPage struct {
	Items      []product.Product
	Pagination Pagination
}

// List fetches the catalog page for the given query.
func (s *ProductsService) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/products"+q.encode(), nil)
	if err != nil {
		return nil, err
	}

	var page ProductPage
	page.Pagination, err = decodeList(body, func(d *jx.Decoder) error {
		p, err := decodeProduct(d)
		if err != nil {
			return err
		}
		page.Items = append(page.Items, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single product by id.
func (s *ProductsService) Get(ctx context.Context, id string) (*product.Product, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p product.Product
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		p, derr = decodeProduct(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "brand":
			p.Brand, err = d.Str()
		case "category":
			p.Category, err = d.Str()
		case "price":
			p.Price, err = storage.DecodeDecimal(d)
		case "sizes":
			p.Sizes, err = decodeStrings(d)
		case "colors":
			p.Colors, err = decodeStrings(d)
		case "image":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var ierr error
				switch key {
				case "thumbnail":
					p.Image.Thumbnail, ierr = d.Str()
				case "mobile":
					p.Image.Mobile, ierr = d.Str()
				case "tablet":
					p.Image.Tablet, ierr = d.Str()
				case "desktop":
					p.Image.Desktop, ierr = d.Str()
				default:
					ierr = d.Skip()
				}
				return ierr
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return p, err
}
