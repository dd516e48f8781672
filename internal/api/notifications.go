package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/jx"
)

// Notification is one entry in the user's notification feed.
type Notification struct {
	ID        string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}

// NotificationsService manages the caller's notification feed.
type NotificationsService service

// List fetches all notifications, most recent first.
func (s *NotificationsService) List(ctx context.Context) ([]Notification, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/notifications", nil)
	if err != nil {
		return nil, err
	}

	var out []Notification
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		n, err := decodeNotification(d)
		if err != nil {
			return err
		}
		out = append(out, n)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags a notification as read and returns the updated entry.
func (s *NotificationsService) MarkRead(ctx context.Context, id string) (*Notification, error) {
	body, err := s.c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil)
	if err != nil {
		return nil, err
	}

	var n Notification
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		n, derr = decodeNotification(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &n, nil
}

// Delete removes a notification.
func (s *NotificationsService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id), nil)
	return err
}

func decodeNotification(d *jx.Decoder) (Notification, error) {
	var n Notification
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			n.ID, err = d.Str()
		case "title":
			n.Title, err = d.Str()
		case "body":
			n.Body, err = d.Str()
		case "read":
			n.Read, err = d.Bool()
		case "created_at":
			n.CreatedAt, err = decodeTime(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return n, err
}
