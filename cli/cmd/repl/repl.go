// Package repl implements a terminal front-end over [lang.REPL] using
// Bubble Tea. It is intentionally small: one input line, one history, and
// fuzzy command completion, with simple line-at-a-time exit semantics
// rather than a full external-editor workflow.
package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/rollenv/lang"
	"github.com/ardnew/rollenv/log"
)

const prompt = "➜ "

// commandCandidates is the fixed completion vocabulary: the four commands
// of the input grammar. Variable names aren't offered, since there's no
// shared registry of "names in scope" cheap enough to query per keystroke
// for a persistent backend.
var commandCandidates = []string{"!roll ", "!set ", "!print-env", "!help"}

var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
)

func formatLine(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model driving one terminal session.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	repl       *lang.REPL
	rctx       lang.Context
	logger     log.Logger
	history    *History
	historyIdx int
	matches    fuzzy.Matches
	width      int
	quitting   bool
}

// Run starts an interactive session over r, scoping every line evaluated in
// this session to rctx.
func Run(ctx context.Context, r *lang.REPL, rctx lang.Context, cacheDir string, logger log.Logger) error {
	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	m := newModel(ctx, r, rctx, history, logger)

	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, r *lang.REPL, rctx lang.Context, history *History, logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		repl:       r,
		rctx:       rctx,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		pos := m.historyIdx + 1
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)), m.history.Len())
		b.WriteString(hintStyle.Render(hint))
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type !roll, !set, !print-env, or !help"))
	case len(m.matches) > 0:
		b.WriteString(m.renderMatches())
	}

	b.WriteString("\n")

	return b.String()
}

func (m *model) refreshMatches() {
	word := currentWord(m.input.Value())
	if word == "" {
		m.matches = nil

		return
	}

	m.matches = fuzzy.Find(word, commandCandidates)
}

func (m model) renderMatches() string {
	parts := make([]string, 0, len(m.matches))

	for _, match := range m.matches {
		parts = append(parts, suggestionStyle.Render(match.Str))
	}

	return strings.Join(parts, "  ")
}

// currentWord returns the leading bareword of the current input line, used
// as the fuzzy-match query against commandCandidates.
func currentWord(input string) string {
	trimmed := strings.TrimLeft(input, " ")
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		return trimmed[:i]
	}

	return trimmed
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyEnter:
		return m.execLine()

	case tea.KeyUp:
		return m.navigateHistory(-1), nil

	case tea.KeyDown:
		return m.navigateHistory(1), nil

	case tea.KeyTab:
		if len(m.matches) > 0 {
			m.input.SetValue(m.matches[0].Str)
			m.input.CursorEnd()
			m.refreshMatches()
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

func (m model) execLine() (model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}

	if _, err := m.history.Write(line); err != nil {
		m.logger.Warn("write history", slog.String("error", err.Error()))
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	m.refreshMatches()

	echo := formatLine(line)

	out, err := m.repl.Exec(m.ctxFunc(), m.rctx, line)
	if err != nil {
		return m, tea.Println(echo, errorStyle.Render("✗ "+err.Error()))
	}

	return m, tea.Println(echo, resultStyle.Render(out))
}

func (m model) navigateHistory(delta int) model {
	next := m.historyIdx + delta
	if next < 0 {
		next = 0
	}

	if next > m.history.Len() {
		next = m.history.Len()
	}

	m.historyIdx = next

	if next == m.history.Len() {
		m.input.SetValue("")
	} else if line, err := m.history.GetLine(next); err == nil {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	return m
}
