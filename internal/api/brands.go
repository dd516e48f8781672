package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/jx"
)

// Brand is an admin-managed catalog brand.
type Brand struct {
	ID   string
	Name string
	Logo string
}

// BrandsService is the admin dashboard's brand CRUD surface.
type BrandsService service

// List fetches every brand.
func (s *BrandsService) List(ctx context.Context) ([]Brand, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/brands", nil)
	if err != nil {
		return nil, err
	}

	var out []Brand
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		b, err := decodeBrand(d)
		if err != nil {
			return err
		}
		out = append(out, b)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a brand.
func (s *BrandsService) Create(ctx context.Context, name, logo string) (*Brand, error) {
	body, err := s.c.do(ctx, http.MethodPost, "/brands", encodeBrandReq(name, logo))
	if err != nil {
		return nil, err
	}
	return decodeBrandData(body)
}

// Update replaces a brand's fields.
func (s *BrandsService) Update(ctx context.Context, id, name, logo string) (*Brand, error) {
	body, err := s.c.do(ctx, http.MethodPut, "/brands/"+url.PathEscape(id), encodeBrandReq(name, logo))
	if err != nil {
		return nil, err
	}
	return decodeBrandData(body)
}

// Delete removes a brand.
func (s *BrandsService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/brands/"+url.PathEscape(id), nil)
	return err
}

func encodeBrandReq(name, logo string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(name) })
		e.Field("logo", func(e *jx.Encoder) { e.Str(logo) })
	})
	return e.Bytes()
}

func decodeBrandData(body []byte) (*Brand, error) {
	var b Brand
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		b, derr = decodeBrand(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &b, nil
}

func decodeBrand(d *jx.Decoder) (Brand, error) {
	var b Brand
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			b.ID, err = d.Str()
		case "name":
			b.Name, err = d.Str()
		case "logo":
			b.Logo, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	return b, err
}
