package interfaces

import (
	"context"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

// ConvertUseCase defines the image fetch-and-convert pass
type ConvertUseCase interface {
	// CheckCodecs verifies every codec capability needed by Run
	CheckCodecs(ctx context.Context) ([]model.CodecStatus, error)

	// Run processes descriptors in order and writes outputs under imagesDir
	Run(ctx context.Context, descriptors []model.ImageDescriptor, imagesDir string) *model.RunSummary
}
