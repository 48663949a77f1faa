package fetcher

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/m-mizutani/ctxlog"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

// Lossless 1x1 WebP (VP8L) used to confirm the webp decoder is registered
const webpProbe = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

// Check decodes tiny in-memory samples of every source format the catalog
// relies on and reports which decoders are available
func (c *Client) Check(ctx context.Context) []model.CodecStatus {
	logger := ctxlog.From(ctx)

	probes := []struct {
		name string
		data func() ([]byte, error)
	}{
		{name: "decode/jpeg", data: jpegProbe},
		{name: "decode/png", data: pngProbe},
		{name: "decode/webp", data: func() ([]byte, error) {
			return base64.StdEncoding.DecodeString(webpProbe)
		}},
	}

	statuses := make([]model.CodecStatus, 0, len(probes))
	for _, p := range probes {
		status := model.CodecStatus{Name: p.name}

		data, err := p.data()
		if err == nil {
			_, err = imaging.Decode(bytes.NewReader(data))
		}
		if err != nil {
			status.Detail = err.Error()
		} else {
			status.Available = true
		}

		logger.Debug("Checked decoder", "name", status.Name, "available", status.Available)
		statuses = append(statuses, status)
	}

	return statuses
}

func probeImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	return img
}

func jpegProbe() ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, probeImage(), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pngProbe() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, probeImage()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
