package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/jx"
)

// Review is a product review owned by a user.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewsService manages product reviews.
type ReviewsService service

// ListByProduct fetches the reviews for one product.
func (s *ReviewsService) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/reviews?product="+url.QueryEscape(productID), nil)
	if err != nil {
		return nil, err
	}

	var out []Review
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		r, err := decodeReview(d)
		if err != nil {
			return err
		}
		out = append(out, r)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new review.
func (s *ReviewsService) Create(ctx context.Context, productID string, rating int, comment string) (*Review, error) {
	body, err := s.c.do(ctx, http.MethodPost, "/reviews", encodeReviewReq(productID, rating, comment))
	if err != nil {
		return nil, err
	}
	return decodeReviewData(body)
}

// Update edits an existing review.
func (s *ReviewsService) Update(ctx context.Context, id string, rating int, comment string) (*Review, error) {
	body, err := s.c.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), encodeReviewReq("", rating, comment))
	if err != nil {
		return nil, err
	}
	return decodeReviewData(body)
}

// Delete removes the caller's review.
func (s *ReviewsService) Delete(ctx context.Context, id string) error {
	_, err := s.c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil)
	return err
}

func encodeReviewReq(productID string, rating int, comment string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		if productID != "" {
			e.Field("product_id", func(e *jx.Encoder) { e.Str(productID) })
		}
		e.Field("rating", func(e *jx.Encoder) { e.Int(rating) })
		e.Field("comment", func(e *jx.Encoder) { e.Str(comment) })
	})
	return e.Bytes()
}

func decodeReviewData(body []byte) (*Review, error) {
	var r Review
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		r, derr = decodeReview(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeReview(d *jx.Decoder) (Review, error) {
	var r Review
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			r.ID, err = d.Str()
		case "product_id":
			r.ProductID, err = d.Str()
		case "user_id":
			r.UserID, err = d.Str()
		case "rating":
			r.Rating, err = d.Int()
		case "comment":
			r.Comment, err = d.Str()
		case "created_at":
			r.CreatedAt, err = decodeTime(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return r, err
}
