package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
)

const (
	cartFile    = "cart.json"
	sessionFile = "session.json"
)

// FileStore persists snapshots as one JSON file per key under a state
// directory. Writes go through a temp file and rename, so readers never see
// a partial snapshot. The store is single-writer: two processes sharing a
// state dir race on last-write-wins, which is why the snapshot carries a
// version stamp at all.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the state directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the state directory path.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) ReadCart(_ context.Context) (*CartSnapshot, error) {
	data, err := s.read(cartFile)
	if err != nil {
		return nil, err
	}
	snap, err := DecodeCart(data)
	if err != nil {
		return nil, &CorruptError{Key: cartFile, Err: err}
	}
	return snap, nil
}

func (s *FileStore) WriteCart(_ context.Context, snap *CartSnapshot) error {
	return s.write(cartFile, EncodeCart(snap))
}

func (s *FileStore) DeleteCart(_ context.Context) error {
	return s.remove(cartFile)
}

func (s *FileStore) ReadSession(_ context.Context) (*user.Session, error) {
	data, err := s.read(sessionFile)
	if err != nil {
		return nil, err
	}
	sess, err := DecodeSession(data)
	if err != nil {
		return nil, &CorruptError{Key: sessionFile, Err: err}
	}
	return sess, nil
}

func (s *FileStore) WriteSession(_ context.Context, sess user.Session) error {
	return s.write(sessionFile, EncodeSession(sess))
}

func (s *FileStore) DeleteSession(_ context.Context) error {
	return s.remove(sessionFile)
}

func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}

func (s *FileStore) write(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "rename %s", name)
	}
	return nil
}

func (s *FileStore) remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", name)
	}
	return nil
}
