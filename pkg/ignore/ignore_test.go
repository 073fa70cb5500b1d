package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	m := New(nil)
	m.AddLines(
		"# drafts are never merged",
		"",
		"*-draft.pdf",
		"scratch/",
		"/cover.pdf",
		"archive/**/old.pdf",
		"!keep-draft.pdf",
		"page?.pdf",
	)
	require.Equal(t, 6, m.Len())

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{path: "report-draft.pdf", want: true},
		{path: "sub/report-draft.pdf", want: true},
		{path: "keep-draft.pdf", want: false},
		{path: "report.pdf", want: false},
		{path: "scratch", isDir: true, want: true},
		{path: "scratch", isDir: false, want: false},
		{path: "scratch/a.pdf", want: true},
		{path: "deep/scratch/a.pdf", want: true},
		{path: "cover.pdf", want: true},
		{path: "sub/cover.pdf", want: false},
		{path: "archive/old.pdf", want: true},
		{path: "archive/2019/q1/old.pdf", want: true},
		{path: "other/old.pdf", want: false},
		{path: "page1.pdf", want: true},
		{path: "page10.pdf", want: false},
		{path: "./report-draft.pdf", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.path, tt.isDir))
		})
	}
}

func TestMatchWithPattern_ReturnsDecidingRule(t *testing.T) {
	m := New(nil)
	m.AddLines("*.pdf", "!a.pdf")

	matched, p := m.MatchWithPattern("a.pdf", false)
	assert.False(t, matched)
	require.NotNil(t, p)
	assert.True(t, p.Negate)
	assert.Equal(t, "!a.pdf", p.Line)

	matched, p = m.MatchWithPattern("notes.txt", false)
	assert.False(t, matched)
	assert.Nil(t, p)
}

func TestAddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("*.bak.pdf\n# comment\n"), 0644))

	m := New(nil)
	require.NoError(t, m.AddFile(path))
	require.NoError(t, m.AddFile(filepath.Join(dir, "does-not-exist")))

	assert.Equal(t, 1, m.Len())
	matched, p := m.MatchWithPattern("x.bak.pdf", false)
	assert.True(t, matched)
	assert.Equal(t, path, p.Source)
}

func TestClone_IsIndependent(t *testing.T) {
	base := New(nil)
	base.AddLines("a.pdf")

	c := base.Clone()
	c.AddLines("b.pdf")

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, c.Len())
	assert.False(t, base.Match("b.pdf", false))
	assert.True(t, c.Match("b.pdf", false))
}
