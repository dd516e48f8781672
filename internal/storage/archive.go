package storage

import (
	"context"
	"io"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
)

// ExportArchive writes a gzip-compressed bundle of the current cart and
// session snapshots to w, for shopctl backup. Missing entries are encoded
// as null so restore can distinguish "absent" from "empty".
func ExportArchive(ctx context.Context, st Store, w io.Writer) error {
	gz := pgzip.NewWriter(w)

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("cart", func(e *jx.Encoder) {
			snap, err := st.ReadCart(ctx)
			if err != nil {
				e.Null()
				return
			}
			e.Raw(EncodeCart(snap))
		})
		e.Field("session", func(e *jx.Encoder) {
			sess, err := st.ReadSession(ctx)
			if err != nil {
				e.Null()
				return
			}
			e.Raw(EncodeSession(*sess))
		})
	})

	if _, err := gz.Write(e.Bytes()); err != nil {
		return errors.Wrap(err, "write archive")
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "close archive")
	}
	return nil
}

// ImportArchive reads a bundle produced by ExportArchive and replaces the
// store's cart and session with its contents. Null entries delete the
// corresponding key.
func ImportArchive(ctx context.Context, st Store, r io.Reader) error {
	gz, err := pgzip.NewReader(r)
	if err != nil {
		return errors.Wrap(err, "open archive")
	}
	defer gz.Close()

	data, err := io.ReadAll(gz)
	if err != nil {
		return errors.Wrap(err, "read archive")
	}

	d := jx.DecodeBytes(data)
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "cart":
			if d.Next() == jx.Null {
				if err := d.Null(); err != nil {
					return err
				}
				return st.DeleteCart(ctx)
			}
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			snap, err := DecodeCart(raw)
			if err != nil {
				return err
			}
			return st.WriteCart(ctx, snap)
		case "session":
			if d.Next() == jx.Null {
				if err := d.Null(); err != nil {
					return err
				}
				return st.DeleteSession(ctx)
			}
			raw, err := d.Raw()
			if err != nil {
				return err
			}
			sess, err := DecodeSession(raw)
			if err != nil {
				return err
			}
			return st.WriteSession(ctx, *sess)
		default:
			return d.Skip()
		}
	})
}
