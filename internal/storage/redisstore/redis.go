// Package redisstore implements storage.Store on Redis, for deployments
// where several kiosks or devices share one shopper's state. Cart writes are
// version-checked: a writer holding a stale snapshot loses, which makes the
// multi-writer policy explicit last-write-wins by version.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

const (
	cartKey    = "cart"
	sessionKey = "session"
)

// Store keeps snapshots under "shop:<owner>:<key>".
type Store struct {
	client *redis.Client
	owner  string
	ttl    time.Duration
}

var _ storage.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTTL sets an expiry on written snapshots. Zero (the default) means
// snapshots never expire.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New returns a Store scoped to the given owner id.
func New(client *redis.Client, owner string, opts ...Option) *Store {
	s := &Store{client: client, owner: owner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return fmt.Sprintf("shop:%s:%s", s.owner, name)
}

func (s *Store) ReadCart(ctx context.Context) (*storage.CartSnapshot, error) {
	data, err := s.read(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	snap, err := storage.DecodeCart(data)
	if err != nil {
		return nil, &storage.CorruptError{Key: s.key(cartKey), Err: err}
	}
	return snap, nil
}

// WriteCart persists the snapshot unless a newer version is already stored.
// The check-and-set runs under WATCH so two racing writers cannot both win.
func (s *Store) WriteCart(ctx context.Context, snap *storage.CartSnapshot) error {
	key := s.key(cartKey)
	data := storage.EncodeCart(snap)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return errors.Wrap(err, "read current snapshot")
		}
		if err == nil {
			// A corrupt stored value never blocks a write.
			if existing, derr := storage.DecodeCart(cur); derr == nil && existing.Version >= snap.Version {
				return storage.ErrStaleSnapshot
			}
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrStaleSnapshot):
		return err
	default:
		return errors.Wrap(err, "write cart snapshot")
	}
}

func (s *Store) DeleteCart(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(cartKey)).Err(); err != nil {
		return errors.Wrap(err, "delete cart snapshot")
	}
	return nil
}

func (s *Store) ReadSession(ctx context.Context) (*user.Session, error) {
	data, err := s.read(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	sess, err := storage.DecodeSession(data)
	if err != nil {
		return nil, &storage.CorruptError{Key: s.key(sessionKey), Err: err}
	}
	return sess, nil
}

func (s *Store) WriteSession(ctx context.Context, sess user.Session) error {
	if err := s.client.Set(ctx, s.key(sessionKey), storage.EncodeSession(sess), s.ttl).Err(); err != nil {
		return errors.Wrap(err, "write session snapshot")
	}
	return nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(sessionKey)).Err(); err != nil {
		return errors.Wrap(err, "delete session snapshot")
	}
	return nil
}

func (s *Store) read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNoSnapshot
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}
