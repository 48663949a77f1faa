package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/visit-auburn/imgprep/pkg/domain/model"
)

const ruleWidth = 60

// Option is a functional option for Reporter configuration
type Option func(*Reporter)

// WithColor forces colored output on or off. By default fatih/color decides
// based on whether stdout is a terminal.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.colorSet = true
		r.colorOn = enabled
	}
}

// Reporter writes human readable progress of a conversion pass
type Reporter struct {
	w        io.Writer
	colorSet bool
	colorOn  bool

	title   *color.Color
	success *color.Color
	failure *color.Color
	muted   *color.Color
}

// New creates a Reporter writing to w
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		w:       w,
		title:   color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		muted:   color.New(color.Faint),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.colorSet {
		for _, c := range []*color.Color{r.title, r.success, r.failure, r.muted} {
			if r.colorOn {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}

	return r
}

// Begin prints the banner
func (r *Reporter) Begin(total int, imagesDir string) {
	r.title.Fprintln(r.w, "Auburn Tourism Image Fetcher & Converter")
	fmt.Fprintln(r.w, strings.Repeat("=", ruleWidth))
	r.muted.Fprintf(r.w, "%d images -> %s\n", total, imagesDir)
}

// ItemStarted prints the item being downloaded
func (r *Reporter) ItemStarted(desc model.ImageDescriptor) {
	fmt.Fprintf(r.w, "\nDownloading: %s\n", desc.Description)
	fmt.Fprintf(r.w, "   -> %s\n", desc.Filename)
}

// ItemFinished prints the item outcome
func (r *Reporter) ItemFinished(result model.ItemResult) {
	if !result.Succeeded() {
		r.failure.Fprintf(r.w, "   Error: %s\n", describeError(result))
		return
	}

	detail := FormatSize(result.Size)
	if reduction, ok := result.Reduction(); ok {
		detail = fmt.Sprintf("%s, %.1f%% smaller", detail, reduction)
	}
	r.success.Fprintf(r.w, "   Saved (%s)\n", detail)
}

// Finish prints the summary block
func (r *Reporter) Finish(summary *model.RunSummary) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(r.w)
	r.title.Fprintln(r.w, "Results:")
	r.success.Fprintf(r.w, "   Successful: %d\n", summary.SuccessCount)
	if summary.ErrorCount > 0 {
		r.failure.Fprintf(r.w, "   Failed: %d\n", summary.ErrorCount)
	} else {
		fmt.Fprintf(r.w, "   Failed: %d\n", summary.ErrorCount)
	}
	fmt.Fprintf(r.w, "   Location: %s\n", summary.ImagesDir)
	fmt.Fprintf(r.w, "   Total size: %s\n", FormatSize(summary.TotalBytesWritten))

	if counts := summary.ByCategory(); len(counts) > 0 {
		fmt.Fprintln(r.w)
		for _, c := range counts {
			r.muted.Fprintf(r.w, "   %-10s %d ok, %d failed\n", c.Category, c.Succeeded, c.Failed)
		}
	}

	fmt.Fprintln(r.w)
	if summary.ErrorCount == 0 {
		r.success.Fprintln(r.w, "Images downloaded and converted to WebP!")
	} else {
		r.failure.Fprintf(r.w, "Finished with %d failed image(s)\n", summary.ErrorCount)
		for _, f := range summary.Failed() {
			r.failure.Fprintf(r.w, "   - %s\n", f.OutputPath)
		}
	}
	fmt.Fprintln(r.w)
}

// describeError names the source URL of fetch failures
func describeError(result model.ItemResult) string {
	if result.Kind() != "fetch" {
		return result.Err.Error()
	}

	url := result.Descriptor.URL
	if v, ok := model.ErrorValue(result.Err, "url"); ok {
		if s, ok := v.(string); ok && s != "" {
			url = s
		}
	}
	if url == "" {
		return result.Err.Error()
	}
	return fmt.Sprintf("Failed to download from %s: %s", url, result.Err.Error())
}

// FormatSize renders a byte count in binary units
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
