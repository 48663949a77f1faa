package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"

	"github.com/visit-auburn/imgprep/pkg/cli/config"
	"github.com/visit-auburn/imgprep/pkg/domain/catalog"
	"github.com/visit-auburn/imgprep/pkg/domain/interfaces"
	"github.com/visit-auburn/imgprep/pkg/domain/model"
	"github.com/visit-auburn/imgprep/pkg/domain/types"
	"github.com/visit-auburn/imgprep/pkg/infra/fetcher"
	"github.com/visit-auburn/imgprep/pkg/infra/webp"
)

// options holds dependencies that can be replaced in tests
type options struct {
	stdout  io.Writer
	stderr  io.Writer
	catalog func() ([]model.ImageDescriptor, error)
	fetcher interfaces.ImageFetcher
	encoder interfaces.ImageEncoder
}

// Option is a functional option for Run
type Option func(*options)

// WithStdout sets where the conversion report is written
func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// WithStderr sets where logs are written
func WithStderr(w io.Writer) Option {
	return func(o *options) {
		o.stderr = w
	}
}

// WithCatalog replaces the embedded image catalog
func WithCatalog(descriptors []model.ImageDescriptor) Option {
	return func(o *options) {
		o.catalog = func() ([]model.ImageDescriptor, error) {
			return descriptors, nil
		}
	}
}

// WithFetcher replaces the HTTP image fetcher
func WithFetcher(f interfaces.ImageFetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithEncoder replaces the WebP encoder
func WithEncoder(e interfaces.ImageEncoder) Option {
	return func(o *options) {
		o.encoder = e
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	o := &options{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		catalog: catalog.Default,
		fetcher: fetcher.New(),
		encoder: webp.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	loggerCfg := config.Logger{Output: o.stderr}
	var outputCfg config.Output
	var logger *slog.Logger

	flags := append(loggerCfg.Flags(), outputCfg.Flags()...)

	app := &cli.Command{
		Name:      "imgprep",
		Usage:     "Download catalog images and convert them to WebP for the website",
		Version:   types.Version,
		Flags:     flags,
		Writer:    o.stdout,
		ErrWriter: o.stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: convertAction(o, &outputCfg),
		Commands: []*cli.Command{
			cmdCheck(o),
			cmdList(o, &outputCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(o.stderr, nil))
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
