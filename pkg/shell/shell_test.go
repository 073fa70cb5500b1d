package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/coderforge/pdfjoin/pkg/filelist"
	"github.com/coderforge/pdfjoin/pkg/joiner"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "shift+up":
		return tea.KeyMsg{Type: tea.KeyShiftUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m, then runs the resulting commands and feeds their
// messages back until none are left. Spinner ticks are dropped.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, out := range run(cmd) {
		if _, ok := out.(spinner.TickMsg); ok {
			continue
		}
		m = send(t, m, out)
	}
	return m
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

type mergeCall struct {
	inputs []string
	output string
}

func newModel(paths []string, merge MergeFunc) Model {
	return New(Options{
		List:  filelist.New(paths...),
		Merge: merge,
		Count: func(path string) (int, error) {
			if strings.Contains(path, "bad") {
				return 0, errors.New("unreadable")
			}
			return len(path), nil
		},
		Workers:       1,
		DefaultOutput: "out.pdf",
		ReadClipboard: func() (string, error) { return "/clip/one.pdf /clip/two.txt", nil },
	})
}

func TestShell_ReorderAndRemove(t *testing.T) {
	m := newModel([]string{"/a.pdf", "/b.pdf", "/c.pdf"}, nil)

	m = send(t, m, key("down"))
	m = send(t, m, key("down"))
	m = send(t, m, key("K"))
	assert.Equal(t, []string{"/a.pdf", "/c.pdf", "/b.pdf"}, m.Paths())
	assert.Equal(t, 1, m.cursor)

	m = send(t, m, key("shift+up"))
	assert.Equal(t, []string{"/c.pdf", "/a.pdf", "/b.pdf"}, m.Paths())
	assert.Equal(t, 0, m.cursor)

	m = send(t, m, key("J"))
	assert.Equal(t, []string{"/a.pdf", "/c.pdf", "/b.pdf"}, m.Paths())

	m = send(t, m, key("down"))
	m = send(t, m, key("d"))
	assert.Equal(t, []string{"/a.pdf", "/c.pdf"}, m.Paths())
	assert.Equal(t, 1, m.cursor, "cursor stays on the last entry")
}

func TestShell_AddFromPrompt(t *testing.T) {
	m := newModel(nil, nil)

	m = send(t, m, key("a"))
	require.Equal(t, modeAdd, m.mode)
	m = typeKeys(t, m, `{/my docs/x.pdf} /y.pdf /z.txt`)
	m = send(t, m, key("enter"))

	assert.Equal(t, modeBrowse, m.mode)
	assert.Equal(t, []string{"/my docs/x.pdf", "/y.pdf"}, m.Paths())
	assert.Equal(t, len("/y.pdf"), m.pages["/y.pdf"].Pages)
	assert.Contains(t, m.View(), "Added 2 file(s)")
}

func TestShell_PromptCancel(t *testing.T) {
	m := newModel(nil, nil)

	m = send(t, m, key("a"))
	m = typeKeys(t, m, "/x.pdf")
	m = send(t, m, key("esc"))

	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, m.Paths())
}

func TestShell_PasteFromClipboard(t *testing.T) {
	m := newModel([]string{"/a.pdf"}, nil)

	m = send(t, m, key("p"))
	assert.Equal(t, []string{"/a.pdf", "/clip/one.pdf"}, m.Paths())
}

func TestShell_MergeEmptyListWarns(t *testing.T) {
	called := false
	m := newModel(nil, func([]string, string) (joiner.Result, error) {
		called = true
		return joiner.Result{}, nil
	})

	m = send(t, m, key("m"))
	assert.False(t, called)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.View(), "No PDF files selected!")
}

func TestShell_Merge(t *testing.T) {
	var calls []mergeCall
	merge := func(inputs []string, output string) (joiner.Result, error) {
		calls = append(calls, mergeCall{inputs: inputs, output: output})
		return joiner.Result{
			Output: output,
			Merged: 2,
			Pages:  5,
			Outcomes: []joiner.Outcome{
				{Path: inputs[0], Status: joiner.StatusMerged, Pages: 3},
				{Path: inputs[1], Status: joiner.StatusMissing, Err: joiner.ErrMissingInput},
				{Path: inputs[2], Status: joiner.StatusMerged, Pages: 2},
			},
		}, nil
	}
	m := newModel([]string{"/a.pdf", "/missing.pdf", "/b.pdf"}, merge)

	m = send(t, m, key("m"))
	require.Equal(t, modeSave, m.mode)
	assert.Equal(t, "out.pdf", m.input.Value())

	m = send(t, m, key("enter"))
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"/a.pdf", "/missing.pdf", "/b.pdf"}, calls[0].inputs)
	assert.Equal(t, "out.pdf", calls[0].output)

	assert.Equal(t, modeBrowse, m.mode)
	view := m.View()
	assert.Contains(t, view, "PDFs merged successfully!")
	assert.Contains(t, view, "skipped missing.pdf")
}

func TestShell_MergeFailure(t *testing.T) {
	merge := func([]string, string) (joiner.Result, error) {
		return joiner.Result{}, joiner.ErrNoValidInputs
	}
	m := newModel([]string{"/bad.pdf"}, merge)

	m = send(t, m, key("m"))
	m = send(t, m, key("enter"))

	assert.Contains(t, m.View(), "Merge failed")
}

func TestShell_InitCountsPages(t *testing.T) {
	m := newModel([]string{"/a.pdf", "/bad.pdf"}, nil)
	for _, msg := range run(m.Init()) {
		m = send(t, m, msg)
	}

	assert.Equal(t, len("/a.pdf"), m.pages["/a.pdf"].Pages)
	assert.Error(t, m.pages["/bad.pdf"].Err)
	assert.Contains(t, m.View(), "(unreadable)")
}

func TestShell_Quit(t *testing.T) {
	m := newModel(nil, nil)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "book.pdf", outputPath("book"))
	assert.Equal(t, "/tmp/my book.pdf", outputPath("'/tmp/my book.pdf'"))
	assert.Equal(t, "", outputPath("   "))
}
