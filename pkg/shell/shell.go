// Package shell is the interactive terminal front end: an ordered list of
// PDF files the user can add to, reorder and prune before merging.
package shell

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/coderforge/pdfjoin/pkg/filelist"
	"github.com/coderforge/pdfjoin/pkg/inspect"
	"github.com/coderforge/pdfjoin/pkg/joiner"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// --- Styles ---
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

const helpText = "a add • p paste • d remove • K/J move up/down • m merge • q quit"

// MergeFunc runs a merge of inputs into output.
type MergeFunc func(inputs []string, output string) (joiner.Result, error)

// Options wires the shell to the rest of the program.
type Options struct {
	List          *filelist.List         // Initial entries; a new list when nil.
	Merge         MergeFunc              // Required.
	Count         inspect.Counter        // Page counter; page counts are not shown when nil.
	Workers       int                    // Page counting concurrency.
	DefaultOutput string                 // Pre-filled output path.
	ReadClipboard func() (string, error) // Defaults to the system clipboard.
	Logger        *zap.Logger
}

// --- Messages ---
type pagesMsg []inspect.Entry

type mergedMsg struct {
	result joiner.Result
	err    error
}

type clipboardMsg struct {
	data string
	err  error
}

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeSave
	modeMerging
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarn
	noticeError
)

// Model is the bubbletea model of the shell.
type Model struct {
	opts    Options
	list    *filelist.List
	cursor  int
	mode    mode
	input   textinput.Model
	spinner spinner.Model
	pages   map[string]inspect.Entry

	notice     string
	noticeKind noticeKind
	skipped    []joiner.Outcome
}

// New returns a shell model over opts.List.
func New(opts Options) Model {
	if opts.List == nil {
		opts.List = &filelist.List{}
	}
	if opts.ReadClipboard == nil {
		opts.ReadClipboard = clipboard.ReadAll
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.DefaultOutput == "" {
		opts.DefaultOutput = "merged.pdf"
	}

	ti := textinput.New()
	ti.CharLimit = 4096
	ti.Cursor.SetMode(cursor.CursorStatic)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		opts:    opts,
		list:    opts.List,
		input:   ti,
		spinner: s,
		pages:   map[string]inspect.Entry{},
	}
}

// Run starts the shell and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.countPages(m.list.Paths())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeAdd, modeSave:
			return m.updatePrompt(msg)
		}
		return m, nil

	case pagesMsg:
		for _, e := range msg {
			m.pages[e.Path] = e
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setNotice(noticeError, fmt.Sprintf("Clipboard unavailable: %v", msg.err))
			return m, nil
		}
		cmd := m.addDropped(msg.data)
		return m, cmd

	case mergedMsg:
		m.mode = modeBrowse
		m.skipped = msg.result.Skipped()
		if msg.err != nil {
			m.setNotice(noticeError, fmt.Sprintf("Merge failed: %v", msg.err))
			return m, nil
		}
		m.setNotice(noticeSuccess, fmt.Sprintf("PDFs merged successfully! %d files, %d pages written to %s",
			msg.result.Merged, msg.result.Pages, msg.result.Output))
		return m, nil

	case spinner.TickMsg:
		if m.mode != modeMerging {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "K", "shift+up":
		if i, err := m.list.MoveUp(m.cursor); err == nil {
			m.cursor = i
		}
	case "J", "shift+down":
		if i, err := m.list.MoveDown(m.cursor); err == nil {
			m.cursor = i
		}
	case "d", "x", "delete":
		removed, err := m.list.Remove(m.cursor)
		if err != nil {
			return m, nil
		}
		delete(m.pages, removed)
		if m.cursor >= m.list.Len() && m.cursor > 0 {
			m.cursor--
		}
		m.setNotice(noticeInfo, "Removed "+filepath.Base(removed))
	case "a":
		cmd := m.prompt(modeAdd, "Add: ", "", "paths or drop files here")
		return m, cmd
	case "p":
		read := m.opts.ReadClipboard
		return m, func() tea.Msg {
			data, err := read()
			return clipboardMsg{data: data, err: err}
		}
	case "m":
		if m.list.Len() == 0 {
			m.setNotice(noticeWarn, "No PDF files selected!")
			return m, nil
		}
		cmd := m.prompt(modeSave, "Save merged PDF as: ", m.opts.DefaultOutput, "")
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		value := m.input.Value()
		m.input.Blur()
		if m.mode == modeAdd {
			m.mode = modeBrowse
			cmd := m.addDropped(value)
			return m, cmd
		}
		return m.startMerge(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) prompt(md mode, label, value, placeholder string) tea.Cmd {
	m.mode = md
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) addDropped(data string) tea.Cmd {
	before := m.list.Len()
	added := m.list.AddDropped(data)
	if added == 0 {
		m.setNotice(noticeWarn, "No new PDF files to add")
		return nil
	}
	m.setNotice(noticeInfo, fmt.Sprintf("Added %d file(s)", added))
	return m.countPages(m.list.Paths()[before:])
}

func (m Model) startMerge(value string) (tea.Model, tea.Cmd) {
	output := outputPath(value)
	if output == "" {
		m.mode = modeBrowse
		return m, nil
	}

	m.mode = modeMerging
	m.skipped = nil
	m.setNotice(noticeInfo, "Merging into "+output)
	m.opts.Logger.Info("Merging from shell", zap.Int("inputCount", m.list.Len()), zap.String("output", output))

	inputs := m.list.Paths()
	merge := m.opts.Merge
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := merge(inputs, output)
		return mergedMsg{result: result, err: err}
	})
}

func (m Model) countPages(paths []string) tea.Cmd {
	if m.opts.Count == nil || len(paths) == 0 {
		return nil
	}
	count, workers, logger := m.opts.Count, m.opts.Workers, m.opts.Logger
	return func() tea.Msg {
		return pagesMsg(inspect.PageCounts(context.Background(), paths, workers, count, logger))
	}
}

func (m *Model) setNotice(kind noticeKind, text string) {
	m.noticeKind = kind
	m.notice = text
}

// outputPath cleans the text typed or dropped into the save prompt and adds
// a .pdf extension when none is given.
func outputPath(value string) string {
	words := filelist.SplitDropped(value)
	if len(words) == 0 {
		return ""
	}
	output := strings.Join(words, " ")
	if filepath.Ext(output) == "" {
		output += ".pdf"
	}
	return output
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("pdfjoin - PDF Merger"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Drop PDFs into the terminal after pressing 'a', or paste paths with 'p'."))
	b.WriteString("\n\n")

	if m.list.Len() == 0 {
		b.WriteString(faintStyle.Render("  No files yet."))
		b.WriteString("\n")
	}
	for i, p := range m.list.Paths() {
		line := fmt.Sprintf("%2d. %s", i+1, filepath.Base(p))
		if e, ok := m.pages[p]; ok {
			if e.Err != nil {
				line += errorStyle.Render("  (unreadable)")
			} else {
				line += faintStyle.Render(fmt.Sprintf("  (%d pages)", e.Pages))
			}
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if total, readable := inspect.Total(m.entries()); readable > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("\n  %d readable files, %d pages", readable, total)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAdd, modeSave:
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("enter confirm • esc cancel"))
	case modeMerging:
		b.WriteString(fmt.Sprintf("%s Merging...", m.spinner.View()))
	default:
		b.WriteString(faintStyle.Render(helpText))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.renderNotice())
		b.WriteString("\n")
	}
	for _, o := range m.skipped {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  skipped %s: %v", filepath.Base(o.Path), o.Err)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderNotice() string {
	switch m.noticeKind {
	case noticeSuccess:
		return successStyle.Render(m.notice)
	case noticeWarn:
		return warnStyle.Render(m.notice)
	case noticeError:
		return errorStyle.Render(m.notice)
	default:
		return m.notice
	}
}

// entries returns the known page counts for the current list.
func (m Model) entries() []inspect.Entry {
	var out []inspect.Entry
	for _, p := range m.list.Paths() {
		if e, ok := m.pages[p]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Paths returns the current list order.
func (m Model) Paths() []string {
	return m.list.Paths()
}
