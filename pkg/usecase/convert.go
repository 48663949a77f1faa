package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/visit-auburn/imgprep/pkg/domain/interfaces"
	"github.com/visit-auburn/imgprep/pkg/domain/model"
	"github.com/visit-auburn/imgprep/pkg/domain/types"
	"github.com/visit-auburn/imgprep/pkg/utils/safe"
)

// ConvertOption is a functional option for the convert use case
type ConvertOption func(*convertUseCase)

// WithQuality sets the output quality passed to the encoder for every item
func WithQuality(quality int) ConvertOption {
	return func(uc *convertUseCase) {
		uc.quality = quality
	}
}

// WithReporter sets the receiver of progress events
func WithReporter(r interfaces.Reporter) ConvertOption {
	return func(uc *convertUseCase) {
		uc.reporter = r
	}
}

type convertUseCase struct {
	fetcher  interfaces.ImageFetcher
	encoder  interfaces.ImageEncoder
	reporter interfaces.Reporter
	quality  int
}

// NewConvert creates a new instance of ConvertUseCase
func NewConvert(fetcher interfaces.ImageFetcher, encoder interfaces.ImageEncoder, opts ...ConvertOption) interfaces.ConvertUseCase {
	uc := &convertUseCase{
		fetcher:  fetcher,
		encoder:  encoder,
		reporter: nopReporter{},
		quality:  types.DefaultQuality,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// CheckCodecs runs the decoder and encoder capability checks once
func (uc *convertUseCase) CheckCodecs(ctx context.Context) ([]model.CodecStatus, error) {
	logger := ctxlog.From(ctx)

	statuses := append(uc.fetcher.Check(ctx), uc.encoder.Check(ctx)...)

	if missing := model.MissingCodecs(statuses); len(missing) > 0 {
		logger.Error("Required image codec is not available", "missing", missing)
		return statuses, goerr.New("required image codec is not available",
			goerr.T(model.ErrTagCodec),
			goerr.V("missing", strings.Join(missing, ", ")),
		)
	}

	logger.Debug("All image codecs available", "count", len(statuses))
	return statuses, nil
}

// Run fetches and converts every descriptor in order. Item failures are
// recorded in the summary and never stop the pass.
func (uc *convertUseCase) Run(ctx context.Context, descriptors []model.ImageDescriptor, imagesDir string) *model.RunSummary {
	summary := model.NewRunSummary(uuid.NewString(), imagesDir)

	logger := ctxlog.From(ctx).With("run_id", summary.RunID)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Starting image conversion",
		"items", len(descriptors),
		"images_dir", imagesDir,
		"quality", uc.quality,
	)

	summary.State = model.RunStateRunning
	uc.reporter.Begin(len(descriptors), imagesDir)

	for _, desc := range descriptors {
		uc.reporter.ItemStarted(desc)

		result := uc.process(ctx, desc, imagesDir)
		summary.Add(result)

		if result.Succeeded() {
			logger.Info("Converted image",
				"filename", desc.Filename,
				"category", desc.Category,
				"size_bytes", result.Size,
			)
		} else {
			logger.Warn("Failed to convert image",
				"filename", desc.Filename,
				"url", desc.URL,
				"kind", result.Kind(),
				"error", result.Err,
			)
		}

		uc.reporter.ItemFinished(result)
	}

	summary.State = model.RunStateCompleted
	uc.reporter.Finish(summary)

	logger.Info("Image conversion completed",
		"succeeded", summary.SuccessCount,
		"failed", summary.ErrorCount,
		"total_bytes", summary.TotalBytesWritten,
	)

	return summary
}

func (uc *convertUseCase) process(ctx context.Context, desc model.ImageDescriptor, imagesDir string) model.ItemResult {
	result := model.ItemResult{
		Descriptor: desc,
		OutputPath: desc.OutputPath(imagesDir),
	}

	var bitmap *model.Bitmap
	err := safe.Call(ctx, func(ctx context.Context) error {
		var err error
		bitmap, err = uc.fetcher.Fetch(ctx, desc.URL)
		return err
	}, model.ErrTagFetch)
	if err != nil {
		result.Err = err
		return result
	}
	result.SourceBytes = bitmap.SourceBytes

	err = safe.Call(ctx, func(ctx context.Context) error {
		size, err := uc.encoder.Encode(ctx, bitmap, result.OutputPath, uc.quality)
		result.Size = size
		return err
	}, model.ErrTagEncode)
	if err != nil {
		result.Size = 0
		result.Err = err
		return result
	}

	return result
}

type nopReporter struct{}

func (nopReporter) Begin(int, string) {}
func (nopReporter) ItemStarted(model.ImageDescriptor) {}
func (nopReporter) ItemFinished(model.ItemResult) {}
func (nopReporter) Finish(*model.RunSummary) {}
