package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/order"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Token: "tok-1"})
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	_, err := c.Categories.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestErrorEnvelopeNormalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "product out of stock"}`))
	})

	_, err := c.Orders.Create(context.Background(), OrderReq{})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "product out of stock", apiErr.Message)
	assert.Equal(t, "product out of stock", Message(err))
}

func TestErrorWithoutMessageGetsFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := c.Products.Get(context.Background(), "p1")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, FallbackMessage, apiErr.Message)
}

func TestTransportFailureNormalized(t *testing.T) {
	c := New(Options{BaseURL: "http://127.0.0.1:1"})

	_, err := c.Products.List(context.Background(), ProductQuery{})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, FallbackMessage, Message(err))
}

func TestProductsList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "socks", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": "p1", "name": "Ankle Socks", "brand": "shivam", "category": "socks",
				 "price": 149.5, "sizes": ["M", "L"],
				 "image": {"thumbnail": "t.jpg", "desktop": "d.jpg"}},
				{"id": "p2", "name": "Thermal Vest", "price": "300"}
			],
			"pagination": {"page": 1, "pages": 3, "total": 42, "per_page": 20}
		}`))
	})

	page, err := c.Products.List(context.Background(), ProductQuery{Category: "socks"})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Ankle Socks", page.Items[0].Name)
	assert.True(t, page.Items[0].Price.Equal(decimal.RequireFromString("149.5")))
	assert.Equal(t, []string{"M", "L"}, page.Items[0].Sizes)
	assert.Equal(t, "t.jpg", page.Items[0].Image.Thumbnail)
	// String-typed prices decode too.
	assert.True(t, page.Items[1].Price.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 42, page.Pagination.Total)
}

func TestOrderCreateAndDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		items := req["items"].([]any)
		require.Len(t, items, 1)
		first := items[0].(map[string]any)
		assert.Equal(t, "p1", first["product_id"])
		assert.Equal(t, "500", first["price"])
		assert.Equal(t, "cod", req["payment_method"])

		_, _ = w.Write([]byte(`{"data": {
			"id": "ord_1", "user_id": "u1", "tracking_number": "",
			"items": [{"product_id": "p1", "name": "Socks", "price": 500, "quantity": 2}],
			"total": 1000,
			"shipping": {"name": "Shivam", "phone": "9876543210", "city": "Kanpur", "postal_code": "208001"},
			"payment_method": "cod", "payment_status": "unpaid",
			"status": "pending", "created_at": "2026-08-28T10:00:00Z"
		}}`))
	})

	o, err := c.Orders.Create(context.Background(), OrderReq{
		Items:         []OrderReqItem{{ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(500)}},
		PaymentMethod: "cod",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord_1", o.ID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Kanpur", o.Shipping.City)
	assert.Equal(t, "TRK-ORD_1", o.Tracking())
}

func TestOrderUnknownStatusRejectedAtBoundary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"id": "ord_1", "status": "refunded"}}`))
	})

	_, err := c.Orders.Get(context.Background(), "ord_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order status")
}

func TestWishlistDanglingProduct(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"id": "w1", "product_id": "p1", "product": {"id": "p1", "name": "Socks", "price": 500}},
			{"id": "w2", "product_id": "p_gone", "product": null}
		]}`))
	})

	items, err := c.Wishlist.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].Dangling())
	assert.True(t, items[1].Dangling())
}

func TestContactSend(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contact", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": "thanks, we will get back to you"}`))
	})

	ack, err := c.Contact.Send(context.Background(), "Shivam", "s@example.com", "hello")
	require.NoError(t, err)
	assert.Equal(t, "thanks, we will get back to you", ack)
}

func TestUploadFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "logo.png", hdr.Filename)
		_, _ = w.Write([]byte(`{"data": {"path": "/uploads/logo.png"}}`))
	})

	path, err := c.Uploads.File(context.Background(), "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/logo.png", path)
}

func TestCustomizationPreviewDecodesBase64(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"image": "` + base64.StdEncoding.EncodeToString(img) + `", "mime_type": "image/png"}}`))
	})

	p, err := c.Customizations.Preview(context.Background(), PreviewReq{ProductID: "p1", Prompt: "add initials"})
	require.NoError(t, err)
	assert.Equal(t, img, p.Image)
	assert.Equal(t, "image/png", p.MimeType)
}

func TestBrandCRUD(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"data": {"id": "b1", "name": "Shivam", "logo": "/uploads/logo.png"}}`))
		case r.Method == http.MethodDelete:
			assert.Equal(t, "/brands/b1", r.URL.Path)
			_, _ = w.Write([]byte(`{"data": null}`))
		default:
			_, _ = w.Write([]byte(`{"data": [{"id": "b1", "name": "Shivam"}]}`))
		}
	})

	ctx := context.Background()
	b, err := c.Brands.Create(ctx, "Shivam", "/uploads/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)

	list, err := c.Brands.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.NoError(t, c.Brands.Delete(ctx, "b1"))
}

func TestNewLeavesCallerClientUntouched(t *testing.T) {
	shared := &http.Client{}

	c := New(Options{BaseURL: "http://example.invalid", HTTPClient: shared})

	require.NotNil(t, c)
	assert.Nil(t, shared.Transport, "caller's transport must not be instrumented")
	assert.Zero(t, shared.Timeout, "caller's timeout must not be changed")
}
