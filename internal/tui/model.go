// Package tui is the interactive terminal form client.
package tui

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Vero970/ProjFit/internal/form"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldFood = iota
	fieldGrams
	fieldCount
)

// SubmittedMsg carries the outcome of a completed submission.
type SubmittedMsg struct {
	Outcome form.Outcome
}

// Model is the bubbletea model for the intake form.
type Model struct {
	ctx     context.Context
	looker  form.Looker
	styles  *Styles
	inputs  []textinput.Model
	focus   int
	loading bool
	outcome *form.Outcome
}

// NewModel creates the form with the default quantity filled in.
func NewModel(ctx context.Context, looker form.Looker, s *Styles) *Model {
	if s == nil {
		s = DefaultStyles()
	}

	food := textinput.New()
	food.Placeholder = "ex: banana"
	food.CharLimit = 128
	food.Width = 40
	food.Focus()

	grams := textinput.New()
	grams.Placeholder = form.FormatGrams(form.DefaultGrams)
	grams.CharLimit = 10
	grams.Width = 10
	grams.SetValue(form.FormatGrams(form.DefaultGrams))

	return &Model{
		ctx:    ctx,
		looker: looker,
		styles: s,
		inputs: []textinput.Model{food, grams},
	}
}

// Init initialises the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case tea.KeyEnter:
			return m, m.submit()
		}

	case SubmittedMsg:
		m.loading = false
		m.outcome = &msg.Outcome
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// submit validates locally and only then returns the command that calls the
// handler.
func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}

	grams, err := form.ParseGrams(m.inputs[fieldGrams].Value())
	if err != nil {
		m.outcome = &form.Outcome{Error: err.Error()}
		return nil
	}
	sub := form.Submission{Food: m.inputs[fieldFood].Value(), Grams: grams}
	if err := form.Validate(sub); err != nil {
		m.outcome = &form.Outcome{Error: err.Error()}
		return nil
	}

	m.loading = true
	m.outcome = nil
	ctx, looker := m.ctx, m.looker
	return func() tea.Msg {
		return SubmittedMsg{Outcome: form.Submit(ctx, looker, sub)}
	}
}

// Outcome returns the last rendered outcome, if any.
func (m *Model) Outcome() *form.Outcome {
	return m.outcome
}

// View renders the form.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(form.Title))
	b.WriteString("\n")

	labels := []string{"Nome do alimento", "Quantidade (g)"}
	for i, input := range m.inputs {
		label := m.styles.Label.Render(labels[i])
		if i == m.focus {
			label = m.styles.Focused.Render(labels[i])
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, input.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(m.styles.Muted.Render("Consultando..."))
	case m.outcome != nil && m.outcome.Success():
		if doc, err := json.MarshalIndent(m.outcome.Result, "", "  "); err == nil {
			b.WriteString(m.styles.Record.Render(string(doc)))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.MetricLabel.Render(m.outcome.MetricLabel))
		b.WriteString("\n")
		b.WriteString(m.styles.MetricValue.Render(m.outcome.MetricValue))
	case m.outcome != nil:
		b.WriteString(m.styles.Error.Render(m.outcome.Error))
	}

	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("tab: próximo campo • enter: calcular • esc: sair"))
	b.WriteString("\n")
	return b.String()
}
