package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coderforge/pdfjoin/pkg/pdf/pdftest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widths(info Info) []float64 {
	out := make([]float64, len(info.Sizes))
	for i, s := range info.Sizes {
		out[i] = s.Width
	}
	return out
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeRelaxed},
		{in: "relaxed", want: ModeRelaxed},
		{in: " STRICT ", want: ModeStrict},
		{in: "lenient", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := pdftest.Write(t, dir, "a.pdf", 100, 101, 102)

	info, err := Inspect(path, ModeRelaxed)
	require.NoError(t, err)
	assert.Equal(t, 3, info.Pages)
	assert.Equal(t, []float64{100, 101, 102}, widths(info))
}

func TestInspect_NotPDF(t *testing.T) {
	path := pdftest.WriteGarbage(t, t.TempDir(), "junk.pdf")

	_, err := Inspect(path, ModeRelaxed)
	require.Error(t, err)
}

func TestDocument_WriteConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 100, 101, 102)
	b := pdftest.Write(t, dir, "b.pdf", 200, 201)
	out := filepath.Join(dir, "out.pdf")

	doc := NewDocument(ModeRelaxed, nil)
	defer doc.Close()

	n, err := doc.Append(b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = doc.Append(a)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 5, doc.Pages())

	require.NoError(t, doc.Write(out))

	info, err := Inspect(out, ModeRelaxed)
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 201, 100, 101, 102}, widths(info))
}

func TestDocument_AppendRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	junk := pdftest.WriteGarbage(t, dir, "junk.pdf")

	doc := NewDocument(ModeRelaxed, nil)
	defer doc.Close()

	_, err := doc.Append(junk)
	require.Error(t, err)
	assert.Zero(t, doc.Pages())
}

func TestDocument_WriteWithoutInputs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.pdf")
	doc := NewDocument(ModeRelaxed, nil)

	require.Error(t, doc.Write(out))
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestDocument_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 100)
	out := filepath.Join(dir, "out.pdf")

	doc := NewDocument(ModeRelaxed, nil)
	_, err := doc.Append(a)
	require.NoError(t, err)
	require.NoError(t, doc.Write(out))
	require.NoError(t, doc.Close())
	require.NoError(t, doc.Close())

	leftovers, err := filepath.Glob(filepath.Join(dir, ".pdfjoin-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestDocument_WriteToMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 100)

	doc := NewDocument(ModeRelaxed, nil)
	defer doc.Close()
	_, err := doc.Append(a)
	require.NoError(t, err)

	err = doc.Write(filepath.Join(dir, "missing", "out.pdf"))
	require.Error(t, err)
}
