package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-faster/jx"
)

// UploadsService sends a single file to the backend's upload endpoint
// and returns the stored path used to build display URLs.
type UploadsService service

// File uploads r as a multipart form file and returns the stored path.
func (s *UploadsService) File(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", wrapTransport(err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", wrapTransport(err)
	}
	if err := mw.Close(); err != nil {
		return "", wrapTransport(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.baseURL+"/upload", &buf)
	if err != nil {
		return "", wrapTransport(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := s.c.send(req)
	if err != nil {
		return "", err
	}

	var path string
	if err := decodeData(body, func(d *jx.Decoder) error {
		return d.Obj(func(d *jx.Decoder, key string) error {
			if key == "path" {
				p, perr := d.Str()
				if perr != nil {
					return perr
				}
				path = p
				return nil
			}
			return d.Skip()
		})
	}); err != nil {
		return "", err
	}
	return path, nil
}
