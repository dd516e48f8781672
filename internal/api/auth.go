package api

import (
	"context"
	"net/http"

	"github.com/go-faster/jx"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

// AuthService exchanges credentials for sessions. Token issuance itself is
// server-owned; this client only carries the result.
type AuthService service

// Login authenticates and returns the session. The caller is responsible
// for installing the token on the client (SetToken) and persisting it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*user.Session, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("email", func(e *jx.Encoder) { e.Str(email) })
		e.Field("password", func(e *jx.Encoder) { e.Str(password) })
	})

	body, err := s.c.do(ctx, http.MethodPost, "/auth/login", e.Bytes())
	if err != nil {
		return nil, err
	}
	return decodeSessionData(body)
}

// Register creates an account and returns the fresh session.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*user.Session, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(email) })
		e.Field("password", func(e *jx.Encoder) { e.Str(password) })
	})

	body, err := s.c.do(ctx, http.MethodPost, "/auth/register", e.Bytes())
	if err != nil {
		return nil, err
	}
	return decodeSessionData(body)
}

// Profile fetches the authenticated user's current profile, including the
// address book.
func (s *AuthService) Profile(ctx context.Context) (*user.User, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}

	var u user.User
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		u, derr = decodeWireUser(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &u, nil
}

func decodeSessionData(body []byte) (*user.Session, error) {
	var sess user.Session
	if err := decodeData(body, func(d *jx.Decoder) error {
		return d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "token":
				t, err := d.Str()
				if err != nil {
					return err
				}
				sess.Token = t
				return nil
			case "user":
				u, err := decodeWireUser(d)
				if err != nil {
					return err
				}
				sess.User = u
				return nil
			default:
				return d.Skip()
			}
		})
	}); err != nil {
		return nil, err
	}
	return &sess, nil
}

func decodeWireUser(d *jx.Decoder) (user.User, error) {
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
				a, aerr := decodeWireAddress(d)
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
