package api

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// Pagination is the optional list envelope metadata.
type Pagination struct {
	Page    int
	Pages   int
	Total   int
	PerPage int
}

// decodeData parses a {data: X} mutation envelope, handing the data value to f.
func decodeData(body []byte, f func(d *jx.Decoder) error) error {
	d := jx.DecodeBytes(body)
	seen := false
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == "data" {
			seen = true
			return f(d)
		}
		return d.Skip()
	})
	if err != nil {
		return errors.Wrap(err, "decode response")
	}
	if !seen {
		return errors.New("response missing data field")
	}
	return nil
}

// decodeList parses a {data: [...], pagination?} list envelope, handing each
// element to elem.
func decodeList(body []byte, elem func(d *jx.Decoder) error) (Pagination, error) {
	var p Pagination
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "data":
			return d.Arr(elem)
		case "pagination":
			return d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "page":
					p.Page, err = d.Int()
				case "pages":
					p.Pages, err = d.Int()
				case "total":
					p.Total, err = d.Int()
				case "per_page":
					p.PerPage, err = d.Int()
				default:
					err = d.Skip()
				}
				return err
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Pagination{}, errors.Wrap(err, "decode list response")
	}
	return p, nil
}

// decodeTime reads an RFC 3339 timestamp. Empty strings decode to zero time
// rather than failing, since the backend omits timestamps on some
// legacy records.
func decodeTime(d *jx.Decoder) (time.Time, error) {
	s, err := d.Str()
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

// decodeStrings reads an array of strings.
func decodeStrings(d *jx.Decoder) ([]string, error) {
	var out []string
	err := d.Arr(func(d *jx.Decoder) error {
		s, err := d.Str()
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	return out, err
}
