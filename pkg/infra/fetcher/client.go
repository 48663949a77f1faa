package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	// WebP sources are decoded through the image package registry
	_ "golang.org/x/image/webp"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
	"github.com/visit-auburn/imgprep/pkg/domain/types"
)

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout sets the timeout of a single download round trip
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its own Timeout is
// overridden by WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header of download requests
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// Client downloads images over HTTP and decodes them
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// New creates a new image fetch client
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		timeout:    types.DefaultFetchTimeoutSeconds * time.Second,
		userAgent:  "imgprep/" + types.Version,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch downloads url and decodes the body into an opaque RGB bitmap.
// Transport errors, timeouts, non-2xx statuses and undecodable bodies all
// return an error tagged with model.ErrTagFetch.
func (c *Client) Fetch(ctx context.Context, url string) (*model.Bitmap, error) {
	logger := ctxlog.From(ctx)

	data, err := c.download(ctx, url)
	if err != nil {
		return nil, err
	}

	logger.Debug("Downloaded image", "url", url, "size_bytes", len(data))

	img, format, err := decode(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode image",
			goerr.T(model.ErrTagFetch),
			goerr.V("url", url),
			goerr.V("size_bytes", len(data)),
		)
	}

	bitmap := &model.Bitmap{
		Image:       normalize(img),
		Format:      format,
		SourceBytes: int64(len(data)),
	}

	logger.Debug("Decoded image",
		"url", url,
		"format", format,
		"width", bitmap.Bounds().Dx(),
		"height", bitmap.Bounds().Dy(),
	)

	return bitmap, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create download request",
			goerr.T(model.ErrTagFetch),
			goerr.V("url", url),
		)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download image",
			goerr.T(model.ErrTagFetch),
			goerr.V("url", url),
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, goerr.New(fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			goerr.T(model.ErrTagFetch),
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body",
			goerr.T(model.ErrTagFetch),
			goerr.V("url", url),
		)
	}

	return data, nil
}

func decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}

	return img, format, nil
}

// normalize drops the alpha channel so the encoder always receives opaque RGB
func normalize(img image.Image) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.A = 0xff
		return c
	})
}
