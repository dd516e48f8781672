package storage

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

// EncodeCart serializes a cart snapshot. Prices are written as strings so
// decimal values round-trip exactly.
func EncodeCart(snap *CartSnapshot) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.UInt64(snap.Version) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range snap.State.Items {
					encodeLine(e, l)
				}
			})
		})
	})
	return e.Bytes()
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(l.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
		e.Field("image", func(e *jx.Encoder) { e.Str(l.Image) })
		e.Field("price", func(e *jx.Encoder) { e.Str(l.Price.String()) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
		if !l.Variant.IsZero() {
			e.Field("variant", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("size", func(e *jx.Encoder) { e.Str(l.Variant.Size) })
					e.Field("color", func(e *jx.Encoder) { e.Str(l.Variant.Color) })
				})
			})
		}
	})
}

// DecodeCart parses a cart snapshot previously produced by EncodeCart.
func DecodeCart(data []byte) (*CartSnapshot, error) {
	var snap CartSnapshot
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "version":
			v, err := d.UInt64()
			if err != nil {
				return err
			}
			snap.Version = v
			return nil
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				l, err := decodeLine(d)
				if err != nil {
					return err
				}
				snap.State.Items = append(snap.State.Items, l)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode cart snapshot")
	}
	return &snap, nil
}

func decodeLine(d *jx.Decoder) (cart.Line, error) {
	var l cart.Line
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "product_id":
			l.ProductID, err = d.Str()
		case "name":
			l.Name, err = d.Str()
		case "image":
			l.Image, err = d.Str()
		case "price":
			l.Price, err = DecodeDecimal(d)
		case "quantity":
			l.Quantity, err = d.Int()
		case "variant":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var verr error
				switch key {
				case "size":
					l.Variant.Size, verr = d.Str()
				case "color":
					l.Variant.Color, verr = d.Str()
				default:
					verr = d.Skip()
				}
				return verr
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return l, err
}

// EncodeSession serializes a session (token plus user projection).
func EncodeSession(s user.Session) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("token", func(e *jx.Encoder) { e.Str(s.Token) })
		e.Field("user", func(e *jx.Encoder) { encodeUser(e, s.User) })
	})
	return e.Bytes()
}

func encodeUser(e *jx.Encoder, u user.User) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(u.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(u.Name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(u.Email) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(u.Phone) })
		e.Field("addresses", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, a := range u.Addresses {
					encodeAddress(e, a)
				}
			})
		})
	})
}

func encodeAddress(e *jx.Encoder, a user.Address) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(a.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(a.Name) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(a.Phone) })
		e.Field("line1", func(e *jx.Encoder) { e.Str(a.Line1) })
		e.Field("city", func(e *jx.Encoder) { e.Str(a.City) })
		e.Field("state", func(e *jx.Encoder) { e.Str(a.State) })
		e.Field("postal_code", func(e *jx.Encoder) { e.Str(a.PostalCode) })
		e.Field("default", func(e *jx.Encoder) { e.Bool(a.Default) })
	})
}

// DecodeSession parses a session previously produced by EncodeSession.
func DecodeSession(data []byte) (*user.Session, error) {
	var s user.Session
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "token":
			t, err := d.Str()
			if err != nil {
				return err
			}
			s.Token = t
			return nil
		case "user":
			u, err := decodeUser(d)
			if err != nil {
				return err
			}
			s.User = u
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode session snapshot")
	}
	return &s, nil
}

func decodeUser(d *jx.Decoder) (user.User, error) {
	var u user.User
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			u.ID, err = d.Str()
		case "name":
			u.Name, err = d.Str()
		case "email":
			u.Email, err = d.Str()
		case "phone":
			u.Phone, err = d.Str()
		case "addresses":
			err = d.Arr(func(d *jx.Decoder) error {
				a, aerr := decodeAddress(d)
				if aerr != nil {
					return aerr
				}
				u.Addresses = append(u.Addresses, a)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
	return u, err
}

func decodeAddress(d *jx.Decoder) (user.Address, error) {
	var a user.Address
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			a.ID, err = d.Str()
		case "name":
			a.Name, err = d.Str()
		case "phone":
			a.Phone, err = d.Str()
		case "line1":
			a.Line1, err = d.Str()
		case "city":
			a.City, err = d.Str()
		case "state":
			a.State, err = d.Str()
		case "postal_code":
			a.PostalCode, err = d.Str()
		case "default":
			a.Default, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return a, err
}

// DecodeDecimal reads a JSON number or number-bearing string as a decimal.
func DecodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(strings.Trim(n.String(), `"`))
}
