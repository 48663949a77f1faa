package webp

import (
	"bytes"
	"context"
	"image"
	"image/color"

	gowebp "github.com/kolesa-team/go-webp/webp"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	xwebp "golang.org/x/image/webp"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

// Check encodes a 1x1 image in memory and decodes it back, which fails when
// libwebp is not usable
func (e *Encoder) Check(ctx context.Context) []model.CodecStatus {
	status := model.CodecStatus{Name: "encode/webp"}

	if err := e.roundTrip(); err != nil {
		status.Detail = err.Error()
	} else {
		status.Available = true
	}

	ctxlog.From(ctx).Debug("Checked encoder", "name", status.Name, "available", status.Available)
	return []model.CodecStatus{status}
}

func (e *Encoder) roundTrip() error {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff})

	options, err := e.options(50)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gowebp.Encode(&buf, src, options); err != nil {
		return goerr.Wrap(err, "failed to encode probe image")
	}

	img, err := xwebp.Decode(&buf)
	if err != nil {
		return goerr.Wrap(err, "failed to decode probe image")
	}
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		return goerr.New("unexpected probe bounds", goerr.V("bounds", b.String()))
	}

	return nil
}
