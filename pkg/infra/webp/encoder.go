package webp

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kolesa-team/go-webp/encoder"
	gowebp "github.com/kolesa-team/go-webp/webp"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

// DefaultMethod is the slowest and best-compressing libwebp method
const DefaultMethod = 6

// Option is a functional option for Encoder configuration
type Option func(*Encoder)

// WithMethod sets the libwebp compression method (0 fast .. 6 best)
func WithMethod(method int) Option {
	return func(e *Encoder) {
		e.method = method
	}
}

// Encoder writes bitmaps as lossy WebP files
type Encoder struct {
	method int
}

// New creates a new WebP encoder
func New(opts ...Option) *Encoder {
	e := &Encoder{
		method: DefaultMethod,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Encode writes bitmap to outputPath as lossy WebP at the given quality and
// returns the size of the written file. Missing parent directories are
// created and an existing file is overwritten. A failed write may leave a
// partial file behind.
func (e *Encoder) Encode(ctx context.Context, bitmap *model.Bitmap, outputPath string, quality int) (int64, error) {
	logger := ctxlog.From(ctx)

	if bitmap == nil || bitmap.Image == nil {
		return 0, goerr.New("bitmap is empty",
			goerr.T(model.ErrTagEncode),
			goerr.V("path", outputPath),
		)
	}

	options, err := e.options(quality)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid encoder options",
			goerr.T(model.ErrTagEncode),
			goerr.V("path", outputPath),
			goerr.V("quality", quality),
		)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, goerr.Wrap(err, "failed to create output directory",
			goerr.T(model.ErrTagEncode),
			goerr.V("dir", dir),
		)
	}

	if err := writeFile(outputPath, bitmap, options); err != nil {
		return 0, goerr.Wrap(err, "failed to write webp file",
			goerr.T(model.ErrTagEncode),
			goerr.V("path", outputPath),
		)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to stat output file",
			goerr.T(model.ErrTagEncode),
			goerr.V("path", outputPath),
		)
	}

	logger.Debug("Wrote webp file",
		"path", outputPath,
		"quality", quality,
		"size_bytes", info.Size(),
	)

	return info.Size(), nil
}

func (e *Encoder) options(quality int) (*encoder.Options, error) {
	if quality < 0 || quality > 100 {
		return nil, goerr.New("quality must be between 0 and 100")
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return nil, err
	}
	options.Method = e.method

	return options, nil
}

func writeFile(path string, bitmap *model.Bitmap, options *encoder.Options) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return gowebp.Encode(f, bitmap.Image, options)
}
