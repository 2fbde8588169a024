package batch

import (
	"time"

	"github.com/pkg/errors"

	"github.com/dd0wney/meshline/pkg/mesh"
)

// File outcomes
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// FileResult is the outcome of converting one mesh file.
type FileResult struct {
	Input       string
	JSONOutput  string
	DXFOutput   string
	Vertices    int
	Lines       int
	Groups      int
	Diagnostics mesh.Diagnostics
	Duration    time.Duration
	// Skipped is set when the run was cancelled before the file was started.
	Skipped bool
	Err     error
}

// Status returns StatusSuccess, StatusFailed or StatusSkipped.
func (f FileResult) Status() string {
	switch {
	case f.Skipped:
		return StatusSkipped
	case f.Err != nil:
		return StatusFailed
	default:
		return StatusSuccess
	}
}

// Report summarizes a batch run. Files keep the discovery order.
type Report struct {
	RunID    string
	Input    string
	Files    []FileResult
	Duration time.Duration
}

func (r *Report) count(status string) int {
	n := 0
	for _, f := range r.Files {
		if f.Status() == status {
			n++
		}
	}
	return n
}

// Succeeded returns the number of converted files.
func (r *Report) Succeeded() int { return r.count(StatusSuccess) }

// Failed returns the number of files that could not be converted.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns the number of files never started because the run was cancelled.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Err summarizes failures, wrapping the first one. It is nil when every file succeeded.
func (r *Report) Err() error {
	failed, skipped := r.Failed(), r.Skipped()
	if failed == 0 && skipped == 0 {
		return nil
	}
	for _, f := range r.Files {
		if f.Err != nil {
			return errors.Wrapf(f.Err, "%d of %d meshes failed, %d skipped; first %s",
				failed, len(r.Files), skipped, f.Input)
		}
	}
	return nil
}
