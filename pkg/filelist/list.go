// Package filelist holds the ordered, de-duplicated list of merge inputs that
// the CLI and the interactive shell build up before calling the joiner.
package filelist

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrIndexOutOfRange is returned when an index does not address an entry.
var ErrIndexOutOfRange = errors.New("index out of range")

// List is an ordered sequence of input paths. Duplicates are suppressed by
// path equality. The zero value is an empty list ready to use.
type List struct {
	paths []string
}

// New returns a list holding paths in order, minus duplicates and blanks.
func New(paths ...string) *List {
	l := &List{}
	l.AddAll(paths...)
	return l
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.paths)
}

// Paths returns a copy of the entries in order.
func (l *List) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// At returns the entry at index i.
func (l *List) At(i int) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	return l.paths[i], nil
}

// Contains reports whether path is already in the list.
func (l *List) Contains(path string) bool {
	for _, p := range l.paths {
		if p == path {
			return true
		}
	}
	return false
}

// Add appends path unless it is blank or already present.
func (l *List) Add(path string) bool {
	if strings.TrimSpace(path) == "" || l.Contains(path) {
		return false
	}
	l.paths = append(l.paths, path)
	return true
}

// AddAll appends each path in order and returns how many were added.
func (l *List) AddAll(paths ...string) int {
	added := 0
	for _, p := range paths {
		if l.Add(p) {
			added++
		}
	}
	return added
}

// AddDropped splits a drag-and-drop payload and appends the PDF files it
// names. Entries without a .pdf extension are ignored.
func (l *List) AddDropped(data string) int {
	added := 0
	for _, p := range SplitDropped(data) {
		if !IsPDF(p) {
			continue
		}
		if l.Add(p) {
			added++
		}
	}
	return added
}

// Remove deletes the entry at index i and returns it.
func (l *List) Remove(i int) (string, error) {
	if err := l.check(i); err != nil {
		return "", err
	}
	removed := l.paths[i]
	l.paths = append(l.paths[:i], l.paths[i+1:]...)
	return removed, nil
}

// Clear removes every entry.
func (l *List) Clear() {
	l.paths = nil
}

// MoveUp swaps entry i with its predecessor and returns its new index.
// The first entry stays in place.
func (l *List) MoveUp(i int) (int, error) {
	if err := l.check(i); err != nil {
		return i, err
	}
	if i == 0 {
		return 0, nil
	}
	l.paths[i-1], l.paths[i] = l.paths[i], l.paths[i-1]
	return i - 1, nil
}

// MoveDown swaps entry i with its successor and returns its new index.
// The last entry stays in place.
func (l *List) MoveDown(i int) (int, error) {
	if err := l.check(i); err != nil {
		return i, err
	}
	if i == len(l.paths)-1 {
		return i, nil
	}
	l.paths[i+1], l.paths[i] = l.paths[i], l.paths[i+1]
	return i + 1, nil
}

// Move relocates the entry at from so that it ends up at index to.
func (l *List) Move(from, to int) error {
	if err := l.check(from); err != nil {
		return err
	}
	if err := l.check(to); err != nil {
		return err
	}
	p := l.paths[from]
	l.paths = append(l.paths[:from], l.paths[from+1:]...)
	l.paths = append(l.paths[:to], append([]string{p}, l.paths[to:]...)...)
	return nil
}

func (l *List) check(i int) error {
	if i < 0 || i >= len(l.paths) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(l.paths))
	}
	return nil
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
