// Package api is the typed client for the storefront's REST backend.
// Every response is normalized once, at this boundary: list endpoints carry
// a {data, pagination} envelope, mutations carry {data}, and failures carry
// {message}. Nothing above this package sees a raw wire payload.
package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. "https://api.shivamhosiery.in".
	BaseURL string
	// Token is an optional initial bearer token; SetToken replaces it after
	// login.
	Token string
	// Timeout bounds each request. Zero applies a 30s default so a hung
	// backend cannot pin a loading flag forever.
	Timeout time.Duration
	// HTTPClient overrides the default client (tests). Its transport is used
	// as the base for instrumentation.
	HTTPClient *http.Client
	// TracerProvider / MeterProvider instrument the outbound transport.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Client is the backend handle. Resource groups hang off it so callers
// read naturally: client.Orders.Create(ctx, req).
type Client struct {
	http    *http.Client
	baseURL string

	mu    sync.RWMutex
	token string

	Products       *ProductsService
	Brands         *BrandsService
	Categories     *CategoriesService
	Orders         *OrdersService
	Wishlist       *WishlistService
	Notifications  *NotificationsService
	Reviews        *ReviewsService
	Auth           *AuthService
	Contact        *ContactService
	Uploads        *UploadsService
	Customizations *CustomizationsService
}

type service struct {
	c *Client
}

// New builds a Client from Options.
func New(opts Options) *Client {
	hc := &http.Client{}
	if opts.HTTPClient != nil {
		// Shallow copy, so the caller's client is not instrumented behind
		// its back.
		clone := *opts.HTTPClient
		hc = &clone
	}
	if hc.Timeout == 0 {
		if opts.Timeout > 0 {
			hc.Timeout = opts.Timeout
		} else {
			hc.Timeout = 30 * time.Second
		}
	}

	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var oopts []otelhttp.Option
	if opts.TracerProvider != nil {
		oopts = append(oopts, otelhttp.WithTracerProvider(opts.TracerProvider))
	}
	if opts.MeterProvider != nil {
		oopts = append(oopts, otelhttp.WithMeterProvider(opts.MeterProvider))
	}
	hc.Transport = otelhttp.NewTransport(base, oopts...)

	c := &Client{
		http:    hc,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		token:   opts.Token,
	}
	s := service{c: c}
	c.Products = (*ProductsService)(&s)
	c.Brands = (*BrandsService)(&s)
	c.Categories = (*CategoriesService)(&s)
	c.Orders = (*OrdersService)(&s)
	c.Wishlist = (*WishlistService)(&s)
	c.Notifications = (*NotificationsService)(&s)
	c.Reviews = (*ReviewsService)(&s)
	c.Auth = (*AuthService)(&s)
	c.Contact = (*ContactService)(&s)
	c.Uploads = (*UploadsService)(&s)
	c.Customizations = (*CustomizationsService)(&s)
	return c
}

// SetToken replaces the bearer token used on subsequent requests. An empty
// token reverts to unauthenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs a JSON request and returns the raw response body for 2xx
// responses. Every failure, transport or HTTP, comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, wrapTransport(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

// send finalizes headers, executes the request, and normalizes the outcome.
func (c *Client) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapTransport(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport(err)
	}
	if resp.StatusCode >= 400 {
		return nil, errorFromResponse(resp.StatusCode, data)
	}
	return data, nil
}
