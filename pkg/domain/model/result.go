package model

// ItemResult is the outcome of processing one catalog entry
type ItemResult struct {
	Descriptor  ImageDescriptor
	OutputPath  string
	Size        int64 // Bytes written, zero on failure
	SourceBytes int64 // Bytes downloaded, zero if the fetch failed
	Err         error
}

// Succeeded reports whether both fetch and encode completed
func (r ItemResult) Succeeded() bool {
	return r.Err == nil
}

// Kind returns the error classification of a failed item
func (r ItemResult) Kind() string {
	return ErrorKind(r.Err)
}

// Reduction returns the size saved relative to the downloaded payload in percent.
// The second return value is false when there is nothing to compare.
func (r ItemResult) Reduction() (float64, bool) {
	if !r.Succeeded() || r.SourceBytes <= 0 {
		return 0, false
	}
	return (1 - float64(r.Size)/float64(r.SourceBytes)) * 100, true
}

// RunState is the lifecycle of a single conversion pass
type RunState string

const (
	RunStateNotStarted RunState = "not_started"
	RunStateRunning    RunState = "running"
	RunStateCompleted  RunState = "completed"
)

// RunSummary accumulates item results of one pass
type RunSummary struct {
	RunID             string
	ImagesDir         string
	State             RunState
	Results           []ItemResult
	SuccessCount      int
	ErrorCount        int
	TotalBytesWritten int64
}

// NewRunSummary creates an empty summary for a pass writing into imagesDir
func NewRunSummary(runID, imagesDir string) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		ImagesDir: imagesDir,
		State:     RunStateNotStarted,
	}
}

// Add records one item result
func (s *RunSummary) Add(r ItemResult) {
	s.Results = append(s.Results, r)
	if r.Succeeded() {
		s.SuccessCount++
		s.TotalBytesWritten += r.Size
		return
	}
	s.ErrorCount++
}

// Total returns the number of processed items
func (s *RunSummary) Total() int {
	return s.SuccessCount + s.ErrorCount
}

// Failed returns the results of failed items in processing order
func (s *RunSummary) Failed() []ItemResult {
	var out []ItemResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}

// ExitCode returns 0 if every item succeeded, otherwise 1
func (s *RunSummary) ExitCode() int {
	if s.ErrorCount > 0 {
		return 1
	}
	return 0
}

// CategoryCount holds per-category outcome counts
type CategoryCount struct {
	Category  Category
	Succeeded int
	Failed    int
}

// ByCategory returns counts for each category that appears in the results,
// in the order of Categories()
func (s *RunSummary) ByCategory() []CategoryCount {
	counts := make(map[Category]*CategoryCount)
	for _, r := range s.Results {
		c, ok := counts[r.Descriptor.Category]
		if !ok {
			c = &CategoryCount{Category: r.Descriptor.Category}
			counts[r.Descriptor.Category] = c
		}
		if r.Succeeded() {
			c.Succeeded++
		} else {
			c.Failed++
		}
	}

	var out []CategoryCount
	for _, cat := range Categories() {
		if c, ok := counts[cat]; ok {
			out = append(out, *c)
		}
	}
	return out
}
