package api

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// PreviewReq describes an AI customization preview request: the product
// being customized, the shopper's prompt, and the source product image path.
type PreviewReq struct {
	ProductID   string
	Prompt      string
	SourceImage string
}

// Preview is a generated customization image, base64-decoded at the edge.
type Preview struct {
	Image    []byte
	MimeType string
}

// CustomizationsService proxies the backend's image-generation preview.
type CustomizationsService service

// Preview requests a generated preview for the given customization.
func (s *CustomizationsService) Preview(ctx context.Context, req PreviewReq) (*Preview, error) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(req.ProductID) })
		e.Field("prompt", func(e *jx.Encoder) { e.Str(req.Prompt) })
		e.Field("source_image", func(e *jx.Encoder) { e.Str(req.SourceImage) })
	})

	body, err := s.c.do(ctx, http.MethodPost, "/customizations", e.Bytes())
	if err != nil {
		return nil, err
	}

	var (
		encoded string
		preview Preview
	)
	if err := decodeData(body, func(d *jx.Decoder) error {
		return d.Obj(func(d *jx.Decoder, key string) error {
			var derr error
			switch key {
			case "image":
				encoded, derr = d.Str()
			case "mime_type":
				preview.MimeType, derr = d.Str()
			default:
				derr = d.Skip()
			}
			return derr
		})
	}); err != nil {
		return nil, err
	}

	preview.Image, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decode preview image")
	}
	return &preview, nil
}
