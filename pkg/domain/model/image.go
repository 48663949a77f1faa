package model

import (
	"image"
	"path/filepath"
)

// Category groups catalog entries for organization and reporting
type Category string

const (
	CategoryVenue    Category = "venue"
	CategoryDining   Category = "dining"
	CategoryDiscover Category = "discover"
	CategoryHero     Category = "hero"
)

// Categories lists all known categories in report order
func Categories() []Category {
	return []Category{CategoryVenue, CategoryDining, CategoryDiscover, CategoryHero}
}

// IsValid checks if the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryVenue, CategoryDining, CategoryDiscover, CategoryHero:
		return true
	default:
		return false
	}
}

// ImageDescriptor describes one source-to-destination conversion task
type ImageDescriptor struct {
	Filename    string   // Output base name including extension
	Directory   string   // Output subdirectory relative to the images root
	URL         string   // Source location
	Description string   // Human readable label
	Category    Category // Organization tag
}

// OutputPath returns the destination file path under imagesRoot
func (d ImageDescriptor) OutputPath(imagesRoot string) string {
	return filepath.Join(imagesRoot, filepath.FromSlash(d.Directory), d.Filename)
}

// Bitmap is a decoded image normalized to opaque RGB
type Bitmap struct {
	Image       *image.NRGBA // Pixel data, alpha is always 0xff
	Format      string       // Source format name reported by the decoder
	SourceBytes int64        // Size of the downloaded payload
}

// Bounds returns the pixel bounds of the bitmap
func (b *Bitmap) Bounds() image.Rectangle {
	if b == nil || b.Image == nil {
		return image.Rectangle{}
	}
	return b.Image.Bounds()
}
