package api

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// FallbackMessage is shown when the backend supplied no usable message.
const FallbackMessage = "something went wrong, please try again"

// Error is the normalized backend failure: an HTTP status (0 for
// transport failures) and a user-facing message. The API layer never lets
// any other error shape escape.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %s", e.Message)
	}
	return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Message extracts the user-facing text from any error produced by this
// package, falling back to a generic string for everything else.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}

// wrapTransport converts a network-level failure into a *Error while keeping
// the cause reachable for errors.Is (context cancellation in particular).
func wrapTransport(err error) *Error {
	return &Error{Status: 0, Message: FallbackMessage, cause: err}
}

// errorFromResponse parses the {message} error envelope. A body that does
// not parse still yields a usable *Error.
func errorFromResponse(status int, body []byte) *Error {
	msg := ""
	d := jx.DecodeBytes(body)
	_ = d.Obj(func(d *jx.Decoder, key string) error {
		if key == "message" {
			s, err := d.Str()
			if err != nil {
				return err
			}
			msg = s
			return nil
		}
		return d.Skip()
	})
	if msg == "" {
		msg = FallbackMessage
	}
	return &Error{Status: status, Message: msg}
}
