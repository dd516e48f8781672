package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

func testSnapshot(t *testing.T) *CartSnapshot {
	t.Helper()
	var s cart.State
	require.NoError(t, s.Add(product.Product{
		ID:    "p1",
		Name:  "Ankle Socks",
		Price: decimal.RequireFromString("149.50"),
		Image: product.Image{Thumbnail: "thumb.jpg"},
	}, product.Variant{Size: "M", Color: "black"}, 2))
	require.NoError(t, s.Add(product.Product{
		ID:    "p2",
		Name:  "Thermal Vest",
		Price: decimal.NewFromInt(300),
	}, product.Variant{}, 1))
	return &CartSnapshot{Version: 3, State: s}
}

func TestFileStore_CartRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	want := testSnapshot(t)
	require.NoError(t, st.WriteCart(ctx, want))

	got, err := st.ReadCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Version, got.Version)
	require.Len(t, got.State.Items, 2)
	assert.Equal(t, want.State.Items[0].ProductID, got.State.Items[0].ProductID)
	assert.Equal(t, want.State.Items[0].Variant, got.State.Items[0].Variant)
	assert.True(t, got.State.Items[0].Price.Equal(decimal.RequireFromString("149.50")))
	assert.True(t, got.State.Total().Equal(want.State.Total()))
}

func TestFileStore_MissingCartReadsAsNoSnapshot(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = st.ReadCart(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFileStore_DeleteRemovesEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, st.WriteCart(ctx, testSnapshot(t)))
	require.NoError(t, st.DeleteCart(ctx))

	// Cleared entry and never-written entry are indistinguishable.
	_, err = st.ReadCart(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
	_, statErr := os.Stat(filepath.Join(dir, cartFile))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting again stays a no-op.
	assert.NoError(t, st.DeleteCart(ctx))
}

func TestFileStore_CorruptCartSurfacesCorruptError(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cartFile), []byte("{nope"), 0o644))

	_, err = st.ReadCart(context.Background())
	var corrupt *CorruptError
	assert.ErrorAs(t, err, &corrupt)
}

func TestFileStore_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	want := user.Session{
		Token: "tok-123",
		User: user.User{
			ID:    "u1",
			Name:  "Shivam",
			Email: "shivam@example.com",
			Addresses: []user.Address{
				{ID: "a1", City: "Kanpur", PostalCode: "208001", Default: true},
			},
		},
	}
	require.NoError(t, st.WriteSession(ctx, want))

	got, err := st.ReadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	require.NoError(t, st.DeleteSession(ctx))
	_, err = st.ReadSession(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestArchive_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, src.WriteCart(ctx, testSnapshot(t)))
	require.NoError(t, src.WriteSession(ctx, user.Session{Token: "tok", User: user.User{ID: "u1"}}))

	var buf bytes.Buffer
	require.NoError(t, ExportArchive(ctx, src, &buf))

	dst, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ImportArchive(ctx, dst, &buf))

	snap, err := dst.ReadCart(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.State.Items, 2)
	sess, err := dst.ReadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
}

func TestArchive_NullEntriesDelete(t *testing.T) {
	ctx := context.Background()
	src, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportArchive(ctx, src, &buf))

	dst, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, dst.WriteCart(ctx, testSnapshot(t)))
	require.NoError(t, ImportArchive(ctx, dst, &buf))

	_, err = dst.ReadCart(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
