// File: pkg/pdf/document.go
package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

var errNoPages = errors.New("no inputs appended")

// Size is the width and height of a page in PDF points.
type Size struct {
	Width  float64
	Height float64
}

// Info describes a readable PDF file.
type Info struct {
	Path  string
	Pages int
	Sizes []Size // One entry per page, in page order
}

// Inspect reads and validates the PDF at path.
func Inspect(path string, mode Mode) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, NewConfiguration(mode))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read pdf: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return Info{}, fmt.Errorf("failed to validate pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return Info{}, fmt.Errorf("failed to count pages: %w", err)
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return Info{}, fmt.Errorf("failed to read page sizes: %w", err)
	}
	sizes := make([]Size, len(dims))
	for i, d := range dims {
		sizes[i] = Size{Width: d.Width, Height: d.Height}
	}

	return Info{Path: path, Pages: ctx.PageCount, Sizes: sizes}, nil
}

// PageCount returns the number of pages of the PDF at path.
func PageCount(path string, mode Mode) (int, error) {
	info, err := Inspect(path, mode)
	if err != nil {
		return 0, err
	}
	return info.Pages, nil
}

// Document accumulates input files and merges them with pdfcpu on Write.
// Inputs are validated when appended; their pages are copied when written.
type Document struct {
	mode   Mode
	logger *zap.Logger
	inputs []string
	pages  int
	tmp    string // Pending temp output, removed by Close
}

// NewDocument returns an empty Document.
func NewDocument(mode Mode, logger *zap.Logger) *Document {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Document{mode: mode, logger: logger}
}

// Append validates the PDF at path and queues its pages.
func (d *Document) Append(path string) (int, error) {
	pages, err := PageCount(path, d.mode)
	if err != nil {
		return 0, err
	}
	d.inputs = append(d.inputs, path)
	d.pages += pages
	d.logger.Debug("Queued pdf pages", zap.String("path", path), zap.Int("pages", pages), zap.Int("totalPages", d.pages))
	return pages, nil
}

// Pages returns the number of pages queued so far.
func (d *Document) Pages() int {
	return d.pages
}

// Write merges every appended input into output. The merge is written to a
// temporary file beside output and renamed over it on success.
func (d *Document) Write(output string) error {
	if len(d.inputs) == 0 {
		return errNoPages
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), ".pdfjoin-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	d.tmp = tmp.Name()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := api.MergeCreateFile(d.inputs, d.tmp, false, NewConfiguration(d.mode)); err != nil {
		return fmt.Errorf("failed to merge pdf files: %w", err)
	}
	if err := os.Chmod(d.tmp, 0644); err != nil {
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(d.tmp, output); err != nil {
		return fmt.Errorf("failed to move merged file into place: %w", err)
	}
	d.tmp = ""

	d.logger.Debug("Wrote merged pdf", zap.String("output", output), zap.Int("inputs", len(d.inputs)), zap.Int("pages", d.pages))
	return nil
}

// Close drops queued inputs and removes any leftover temp file. It is safe to call more than once.
func (d *Document) Close() error {
	d.inputs = nil
	d.pages = 0
	if d.tmp == "" {
		return nil
	}
	tmp := d.tmp
	d.tmp = ""
	if err := os.Remove(tmp); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove temp file: %w", err)
	}
	return nil
}
