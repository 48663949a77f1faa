package types

// Version is overwritten at build time via -ldflags
var Version = "dev"

const (
	// DefaultQuality is the WebP quality used for every catalog item
	DefaultQuality = 85

	// DefaultFetchTimeoutSeconds bounds a single image download round trip
	DefaultFetchTimeoutSeconds = 10
)
