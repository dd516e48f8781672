package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/order"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *storage.FileStore) {
	t.Helper()
	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message": "unexpected call"}`, http.StatusInternalServerError)
		}
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	client := api.New(api.Options{BaseURL: srv.URL})
	return New(context.Background(), client, fs), fs
}

func socks(price int64) product.Product {
	return product.Product{
		ID:    "p1",
		Name:  "Ankle Socks",
		Price: decimal.NewFromInt(price),
		Image: product.Image{Thumbnail: "t.jpg"},
	}
}

func signIn(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.setSession(context.Background(), user.Session{
		Token: "tok",
		User:  user.User{ID: "u1", Name: "Shivam"},
	}))
}

func TestCartCommandsPersistEveryMutation(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t, nil)

	require.NoError(t, s.AddItem(ctx, socks(500), product.Variant{Size: "M"}, 2))

	snap, err := fs.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	require.Len(t, snap.State.Items, 1)

	require.NoError(t, s.UpdateQuantity(ctx, "p1", 5))
	snap, err = fs.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, 5, snap.State.Items[0].Quantity)

	require.NoError(t, s.RemoveItem(ctx, "p1"))
	snap, err = fs.ReadCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.State.Items)
}

func TestClearCartRemovesSnapshotEntirely(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t, nil)

	require.NoError(t, s.AddItem(ctx, socks(500), product.Variant{}, 1))
	require.NoError(t, s.ClearCart(ctx))

	_, err := fs.ReadCart(ctx)
	assert.ErrorIs(t, err, storage.ErrNoSnapshot)
	assert.True(t, s.Cart().Empty())
}

func TestHydrationRestoresCartAcrossRestart(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t, nil)
	require.NoError(t, s.AddItem(ctx, socks(500), product.Variant{}, 2))

	reborn := New(ctx, api.New(api.Options{BaseURL: "http://127.0.0.1:1"}), fs)
	got := reborn.Cart()
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, reborn.CartTotal().Equal(decimal.NewFromInt(1000)))
}

func TestHydrationToleratesCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	_, fs := newTestStore(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(fs.Dir(), "cart.json"), []byte("{broken"), 0o644))

	s := New(ctx, api.New(api.Options{BaseURL: "http://127.0.0.1:1"}), fs)
	assert.True(t, s.Cart().Empty())
}

func TestReorderPreservesQuantitiesAndSnapshots(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, nil)

	past := order.Order{
		ID: "ord_1",
		Items: []order.Item{
			{ProductID: "p1", Name: "Socks", Price: decimal.NewFromInt(500), Quantity: 2},
			{ProductID: "p2", Name: "Vest", Price: decimal.NewFromInt(300), Quantity: 1},
		},
	}
	require.NoError(t, s.Reorder(ctx, past))

	got := s.Cart()
	require.Len(t, got.Items, 2)
	assert.Equal(t, 2, got.Items[0].Quantity)
	// Reorder keeps the order's price snapshot, not the live catalog price.
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(500)))
	assert.True(t, s.CartTotal().Equal(decimal.NewFromInt(1300)))
}

func TestSessionRequiredForOwnedCollections(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, nil)

	assert.ErrorIs(t, s.RefreshOrders(ctx), ErrNotSignedIn)
	assert.ErrorIs(t, s.RefreshWishlist(ctx), ErrNotSignedIn)
	assert.ErrorIs(t, s.AddToWishlist(ctx, "p1"), ErrNotSignedIn)
}

func TestLogoutKeepsCart(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t, nil)
	signIn(t, s)
	require.NoError(t, s.AddItem(ctx, socks(500), product.Variant{}, 1))

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.Authenticated())
	_, err := fs.ReadSession(ctx)
	assert.ErrorIs(t, err, storage.ErrNoSnapshot)
	assert.False(t, s.Cart().Empty())
}

func TestRefreshProductsReplacesCollection(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": "p1", "name": "Socks", "price": 500}]}`))
	})

	require.NoError(t, s.RefreshProducts(ctx, api.ProductQuery{}))

	v := s.Products.View()
	require.Len(t, v.Items, 1)
	assert.False(t, v.Loading)
	assert.Empty(t, v.Err)
}

func TestRefreshFailureKeepsPreviousItems(t *testing.T) {
	ctx := context.Background()
	var fail atomic.Bool
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, `{"message": "catalog unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "p1", "name": "Socks", "price": 500}]}`))
	})

	require.NoError(t, s.RefreshProducts(ctx, api.ProductQuery{}))
	fail.Store(true)
	require.Error(t, s.RefreshProducts(ctx, api.ProductQuery{}))

	v := s.Products.View()
	require.Len(t, v.Items, 1, "previous state untouched on failure")
	assert.Equal(t, "catalog unavailable", v.Err)
}

func TestStaleListFetchIsDiscarded(t *testing.T) {
	ctx := context.Background()

	firstArrived := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(firstArrived)
			<-release
			_, _ = w.Write([]byte(`{"data": [{"id": "stale", "name": "Old", "price": 1}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "fresh", "name": "New", "price": 2}]}`))
	})

	done := make(chan error, 1)
	go func() {
		done <- s.RefreshProducts(ctx, api.ProductQuery{})
	}()
	<-firstArrived

	// A newer fetch completes while the first is still in flight.
	require.NoError(t, s.RefreshProducts(ctx, api.ProductQuery{}))

	// Let the stale fetch resolve last.
	close(release)
	require.NoError(t, <-done)

	v := s.Products.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, "fresh", v.Items[0].ID)
	assert.False(t, v.Loading)
}

func TestLoadOrderRejectsForeignOwner(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"id": "ord_1", "user_id": "someone-else", "status": "pending"}}`))
	})
	signIn(t, s)

	_, err := s.LoadOrder(ctx, "ord_1")
	assert.ErrorIs(t, err, order.ErrAccessDenied)
	assert.Equal(t, "access denied", s.Orders.View().Err)
	assert.Nil(t, s.Orders.View().Current)
}

func TestCancelOrderGateRunsLocally(t *testing.T) {
	ctx := context.Background()
	var called atomic.Bool
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			_, _ = w.Write([]byte(`{"data": [{"id": "ord_1", "user_id": "u1", "status": "shipped"}]}`))
		default:
			called.Store(true)
			http.Error(w, `{"message": "no"}`, http.StatusBadRequest)
		}
	})
	signIn(t, s)
	require.NoError(t, s.RefreshOrders(ctx))

	err := s.CancelOrder(ctx, "ord_1")
	assert.ErrorIs(t, err, order.ErrNotCancelable)
	assert.False(t, called.Load(), "shipped order must never reach the server")
}

func TestCancelOrderSwapsInServerRepresentation(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/orders" && r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`{"data": [{"id": "ord_1", "user_id": "u1", "status": "pending"}]}`))
		case r.URL.Path == "/orders/ord_1/cancel":
			_, _ = w.Write([]byte(`{"data": {"id": "ord_1", "user_id": "u1", "status": "cancelled"}}`))
		default:
			http.NotFound(w, r)
		}
	})
	signIn(t, s)
	require.NoError(t, s.RefreshOrders(ctx))

	require.NoError(t, s.CancelOrder(ctx, "ord_1"))

	v := s.Orders.View()
	require.Len(t, v.Items, 1)
	assert.Equal(t, order.StatusCancelled, v.Items[0].Status)
}

func TestWishlistMutationsArePessimistic(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "wishlist full"}`, http.StatusUnprocessableEntity)
	})
	signIn(t, s)

	err := s.AddToWishlist(ctx, "p1")
	require.Error(t, err)

	v := s.Wishlist.View()
	assert.Empty(t, v.Items, "no speculative local mutation before confirmation")
	assert.Equal(t, "wishlist full", v.Err)
}
