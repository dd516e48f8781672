// Package storage persists local commerce state: the cart snapshot and the
// session (user + token). Absence or corruption of either must degrade to an
// empty default at hydration time, never a crash.
package storage

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/cart"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

// ErrNoSnapshot is returned when no persisted value exists for a key.
// A cleared cart and a never-written cart are indistinguishable: both read
// back as ErrNoSnapshot.
var ErrNoSnapshot = errors.New("no snapshot")

// ErrStaleSnapshot is returned by version-checked writes when a newer
// snapshot is already persisted (last-write-wins by version).
var ErrStaleSnapshot = errors.New("stale snapshot version")

// CorruptError indicates a persisted value that could not be decoded. The
// caller treats it as empty state and logs the cause.
type CorruptError struct {
	Key string
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt snapshot %q: %v", e.Key, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// CartSnapshot is the durable cart envelope. Version increases monotonically
// with every write so concurrent writers resolve to explicit last-write-wins.
type CartSnapshot struct {
	Version uint64
	State   cart.State
}

// Store reads and writes the serialized local state. Implementations keep
// the cart and session under separate keys per the storage layout.
type Store interface {
	ReadCart(ctx context.Context) (*CartSnapshot, error)
	WriteCart(ctx context.Context, snap *CartSnapshot) error
	// DeleteCart removes the persisted entry entirely rather than writing an
	// empty snapshot.
	DeleteCart(ctx context.Context) error

	ReadSession(ctx context.Context) (*user.Session, error)
	WriteSession(ctx context.Context, s user.Session) error
	DeleteSession(ctx context.Context) error
}
