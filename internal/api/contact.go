package api

import (
	"context"
	"net/http"

	"github.com/go-faster/jx"
)

// ContactService submits brochure-site contact messages. Delivery happens
// through the backend's outbound mailer; success or failure reduces to
// error-or-nil plus the server's message.
type ContactService service

// Send submits a contact message and returns the server's acknowledgement
// text.
func (s *ContactService) Send(ctx context.Context, name, email, message string) (string, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(name) })
		e.Field("email", func(e *jx.Encoder) { e.Str(email) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})

	body, err := s.c.do(ctx, http.MethodPost, "/contact", e.Bytes())
	if err != nil {
		return "", err
	}

	ack := ""
	d := jx.DecodeBytes(body)
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		if key == "message" {
			m, merr := d.Str()
			if merr != nil {
				return merr
			}
			ack = m
			return nil
		}
		return d.Skip()
	})
	return ack, nil
}
