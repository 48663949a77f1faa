package interfaces

import (
	"context"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

// ImageFetcher downloads and decodes source images
type ImageFetcher interface {
	// Fetch downloads url and decodes it into an opaque RGB bitmap
	Fetch(ctx context.Context, url string) (*model.Bitmap, error)

	// Check reports whether the required image decoders are available
	Check(ctx context.Context) []model.CodecStatus
}

// ImageEncoder writes bitmaps to disk in the output format
type ImageEncoder interface {
	// Encode writes bitmap to outputPath and returns the written file size
	Encode(ctx context.Context, bitmap *model.Bitmap, outputPath string, quality int) (int64, error)

	// Check reports whether the output encoder is available
	Check(ctx context.Context) []model.CodecStatus
}

// Reporter receives progress of a conversion pass
type Reporter interface {
	Begin(total int, imagesDir string)
	ItemStarted(desc model.ImageDescriptor)
	ItemFinished(result model.ItemResult)
	Finish(summary *model.RunSummary)
}
