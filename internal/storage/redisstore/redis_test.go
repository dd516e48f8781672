package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, "u1")
}

func snapshotWith(t *testing.T, version uint64, qty int) *storage.CartSnapshot {
	t.Helper()
	var s cart.State
	require.NoError(t, s.Add(product.Product{
		ID:    "p1",
		Name:  "Ankle Socks",
		Price: decimal.NewFromInt(500),
	}, product.Variant{}, qty))
	return &storage.CartSnapshot{Version: version, State: s}
}

func TestCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.WriteCart(ctx, snapshotWith(t, 1, 2)))

	got, err := st.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Version)
	require.Len(t, got.State.Items, 1)
	assert.Equal(t, 2, got.State.Items[0].Quantity)
}

func TestWriteCart_StaleVersionRejected(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.WriteCart(ctx, snapshotWith(t, 5, 2)))

	err := st.WriteCart(ctx, snapshotWith(t, 5, 9))
	assert.ErrorIs(t, err, storage.ErrStaleSnapshot)
	err = st.WriteCart(ctx, snapshotWith(t, 4, 9))
	assert.ErrorIs(t, err, storage.ErrStaleSnapshot)

	// The stored snapshot is untouched.
	got, err := st.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), got.Version)
	assert.Equal(t, 2, got.State.Items[0].Quantity)

	// A newer version wins.
	require.NoError(t, st.WriteCart(ctx, snapshotWith(t, 6, 9)))
	got, err = st.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, got.State.Items[0].Quantity)
}

func TestDeleteCart_ReadsBackAsNoSnapshot(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	require.NoError(t, st.WriteCart(ctx, snapshotWith(t, 1, 1)))
	require.NoError(t, st.DeleteCart(ctx))

	_, err := st.ReadCart(ctx)
	assert.ErrorIs(t, err, storage.ErrNoSnapshot)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	want := user.Session{Token: "tok", User: user.User{ID: "u1", Name: "Shivam"}}
	require.NoError(t, st.WriteSession(ctx, want))

	got, err := st.ReadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestCorruptValueSurfacesCorruptError(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	st := New(client, "u1")

	require.NoError(t, mr.Set("shop:u1:cart", "{broken"))

	_, err := st.ReadCart(ctx)
	var corrupt *storage.CorruptError
	assert.ErrorAs(t, err, &corrupt)
}
