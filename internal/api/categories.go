package api

import (
	"context"
	"net/http"

	"github.com/go-faster/jx"
)

// Category is a catalog navigation entry.
type Category struct {
	ID   string
	Name string
}

// CategoriesService reads catalog categories.
type CategoriesService service

// List fetches every category.
func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/categories", nil)
	if err != nil {
		return nil, err
	}

	var out []Category
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		var c Category
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "id":
				c.ID, err = d.Str()
			case "name":
				c.Name, err = d.Str()
			default:
				err = d.Skip()
			}
			return err
		}); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
