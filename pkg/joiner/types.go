// File: pkg/joiner/types.go
package joiner

import "errors"

// Sentinel errors reported by Merge. Per-input errors are wrapped into
// Outcome.Err; fatal errors are returned from Merge itself.
var (
	ErrMissingInput    = errors.New("input file not found")
	ErrUnreadableInput = errors.New("input file unreadable")
	ErrNoValidInputs   = errors.New("no valid files to merge")
	ErrOutputWrite     = errors.New("failed to write merged output")
	ErrOutputIsInput   = errors.New("output path is also an input")
)

// Accumulator collects pages from input files and serializes them once.
type Accumulator interface {
	// Append adds every page of the file at path and returns how many were added.
	Append(path string) (int, error)
	// Write serializes the accumulated pages to output.
	Write(output string) error
	// Close releases any resources held by the accumulator.
	Close() error
}

// AccumulatorFactory creates a fresh Accumulator for a single merge call.
type AccumulatorFactory func() Accumulator

// Status describes what happened to one input during a merge.
type Status int

const (
	StatusMerged Status = iota
	StatusMissing
	StatusUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusMerged:
		return "merged"
	case StatusMissing:
		return "missing"
	case StatusUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Outcome is the per-input record of a merge.
type Outcome struct {
	Path   string // Normalized input path
	Status Status // What happened to the input
	Pages  int    // Pages appended; zero unless Status is StatusMerged
	Err    error  // Non-nil unless Status is StatusMerged
}

// Result summarizes a merge call.
type Result struct {
	Output   string    // Output path as given
	Merged   int       // Number of inputs appended successfully
	Pages    int       // Total pages written
	Outcomes []Outcome // One entry per input, in input order
}

// Skipped returns the outcomes that were not merged.
func (r Result) Skipped() []Outcome {
	var skipped []Outcome
	for _, o := range r.Outcomes {
		if o.Status != StatusMerged {
			skipped = append(skipped, o)
		}
	}
	return skipped
}
