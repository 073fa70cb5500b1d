// File: pkg/joiner/merge.go
package joiner

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// Joiner concatenates PDF inputs into a single output document.
type Joiner struct {
	newAccumulator AccumulatorFactory
	logger         *zap.Logger
	out            io.Writer
}

// New returns a Joiner that builds each merge on a fresh accumulator from
// factory. Progress lines are printed to out; structured events go to logger.
func New(factory AccumulatorFactory, logger *zap.Logger, out io.Writer) *Joiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Joiner{
		newAccumulator: factory,
		logger:         logger,
		out:            out,
	}
}

// Inputs is an ordered source of input paths, such as a filelist.List.
type Inputs interface {
	Paths() []string
}

// MergeList merges the current contents of in. The order is captured once,
// at call time.
func (j *Joiner) MergeList(in Inputs, output string) (Result, error) {
	return j.Merge(in.Paths(), output)
}

// Merge appends the pages of every input, in order, and writes the result to
// output. Missing and unreadable inputs are skipped and recorded in the
// returned Result. A nil error means the output file was written.
func (j *Joiner) Merge(inputs []string, output string) (Result, error) {
	startTime := time.Now()
	result := Result{Output: output, Outcomes: make([]Outcome, 0, len(inputs))}

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = NormalizePath(in)
	}

	j.printf("--- Starting PDF Merge ---\n")
	j.logger.Info("Starting PDF merge", zap.Int("inputCount", len(paths)), zap.String("output", output))

	for _, path := range paths {
		if samePath(path, output) {
			err := fmt.Errorf("%w: %s", ErrOutputIsInput, path)
			j.printf("An unexpected error occurred: %v\n", err)
			j.logger.Error("Refusing to overwrite an input", zap.String("path", path), zap.Error(err))
			return result, err
		}
	}

	acc := j.newAccumulator()
	defer func() {
		if err := acc.Close(); err != nil {
			j.logger.Warn("Failed to release accumulator", zap.Error(err))
		}
	}()

	for _, path := range paths {
		outcome := j.appendInput(acc, path)
		if outcome.Status == StatusMerged {
			result.Merged++
			result.Pages += outcome.Pages
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if result.Merged == 0 {
		j.printf("--- Operation failed: No valid files to merge. ---\n")
		j.logger.Warn("No valid files to merge", zap.Int("inputCount", len(paths)))
		return result, ErrNoValidInputs
	}

	j.printf("Writing merged file to: %s\n", output)
	if err := write(acc, output); err != nil {
		err = fmt.Errorf("%w %s: %w", ErrOutputWrite, output, err)
		j.printf("An unexpected error occurred: %v\n", err)
		j.logger.Error("Failed to write merged file", zap.String("output", output), zap.Error(err))
		return result, err
	}

	j.printf("--- Success! Merged %d files. ---\n", result.Merged)
	j.logger.Info("PDF merge completed",
		zap.String("output", output),
		zap.Int("mergedFiles", result.Merged),
		zap.Int("pages", result.Pages),
		zap.Duration("elapsed", time.Since(startTime)),
	)
	return result, nil
}

// appendInput processes a single input. It never fails the merge; problems
// are reported through the returned Outcome.
func (j *Joiner) appendInput(acc Accumulator, path string) Outcome {
	if err := checkInput(path); err != nil {
		j.printf("[!] Warning: File not found and skipped: %s\n", path)
		j.logger.Warn("Input not found, skipping", zap.String("path", path), zap.Error(err))
		return Outcome{Path: path, Status: StatusMissing, Err: fmt.Errorf("%w: %w", ErrMissingInput, err)}
	}

	j.printf("Processing: %s\n", path)
	pages, err := appendPages(acc, path)
	if err != nil {
		j.printf("[!] Error reading %s: %v\n", path, err)
		j.logger.Error("Failed to append input", zap.String("path", path), zap.Error(err))
		return Outcome{Path: path, Status: StatusUnreadable, Err: fmt.Errorf("%w: %w", ErrUnreadableInput, err)}
	}

	j.logger.Debug("Appended input", zap.String("path", path), zap.Int("pages", pages))
	return Outcome{Path: path, Status: StatusMerged, Pages: pages}
}

func (j *Joiner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(j.out, format, args...)
}

// appendPages calls acc.Append, turning a panic in the PDF library into an error.
func appendPages(acc Accumulator, path string) (pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("panic while reading: %v", r)
		}
	}()
	return acc.Append(path)
}

// write calls acc.Write, turning a panic in the PDF library into an error.
func write(acc Accumulator, output string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while writing: %v", r)
		}
	}()
	return acc.Write(output)
}
