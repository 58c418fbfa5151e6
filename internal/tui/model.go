// Package tui provides the Bubble Tea typing screen for one session.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"typetrivia/internal/typing"
)

const (
	// advanceDelay keeps the solved answer on screen for a beat before the
	// next prompt replaces it.
	advanceDelay = 100 * time.Millisecond
	clockTick    = time.Second
)

var (
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Underline(true)
	revealStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type tickMsg time.Time

type advanceMsg struct{}

// Model implements the Bubble Tea typing UI over a running session.
type Model struct {
	session *typing.Session

	width  int
	height int

	input    []rune
	eval     typing.Evaluation
	solved   bool
	revealed string

	live      typing.Summary
	abandoned bool
}

// NewModel wraps an already started session.
func NewModel(session *typing.Session) *Model {
	return &Model{
		session: session,
		live:    session.Live(),
	}
}

// Abandoned reports whether the user quit mid-session.
func (m *Model) Abandoned() bool {
	return m.abandoned
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return scheduleTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.session.State() != typing.StateActive {
			return m, nil
		}
		m.live = m.session.Live()
		return m, scheduleTick()
	case advanceMsg:
		return m.advance()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.session.State() == typing.StateActive {
			m.abandoned = true
		}
		return m, tea.Quit
	case tea.KeyTab:
		return m.skip()
	case tea.KeyBackspace, tea.KeyDelete:
		if m.solved || len(m.input) == 0 {
			return m, nil
		}
		m.input = m.input[:len(m.input)-1]
		return m.evaluate()
	case tea.KeySpace:
		return m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return m.typeRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) typeRunes(runes []rune) (tea.Model, tea.Cmd) {
	if m.solved || m.session.State() != typing.StateActive {
		return m, nil
	}
	m.revealed = ""
	m.input = append(m.input, runes...)
	return m.evaluate()
}

func (m *Model) evaluate() (tea.Model, tea.Cmd) {
	eval, err := m.session.Input(string(m.input))
	if err != nil {
		return m, nil
	}
	m.eval = eval
	if eval.Solved {
		m.solved = true
		return m, tea.Tick(advanceDelay, func(time.Time) tea.Msg { return advanceMsg{} })
	}
	return m, nil
}

func (m *Model) skip() (tea.Model, tea.Cmd) {
	if m.solved {
		return m, nil
	}
	answer, err := m.session.Skip()
	if err != nil {
		return m, nil
	}
	m.revealed = answer
	m.input = nil
	m.eval = typing.Evaluation{}
	if m.session.State() != typing.StateActive {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) advance() (tea.Model, tea.Cmd) {
	m.session.Advance()
	m.input = nil
	m.eval = typing.Evaluation{}
	m.solved = false
	m.revealed = ""
	if m.session.State() != typing.StateActive {
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	current, ok := m.session.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(current.Text))
	b.WriteString("\n\n")
	b.WriteString(renderAnswer([]rune(current.Answer), m.eval))
	if m.revealed != "" {
		b.WriteString("\n")
		b.WriteString(revealStyle.Render("answer: " + m.revealed))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(m.renderFooter()))

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderFooter() string {
	segments := []string{
		fmt.Sprintf("%d/%d", m.session.Index()+1, m.session.Len()),
		fmt.Sprintf("%.1f WPM", m.live.WPM),
		fmt.Sprintf("%.1f%% acc", m.live.Accuracy),
		fmt.Sprintf("%ds", m.live.ElapsedSeconds),
		"tab skip · esc quit",
	}
	return strings.Join(segments, "  ")
}

// renderAnswer styles each answer position by its mark. The first pending
// position carries the cursor.
func renderAnswer(answer []rune, eval typing.Evaluation) string {
	var b strings.Builder
	cursorPlaced := false
	for i, r := range answer {
		var mark typing.Mark
		if i < len(eval.Marks) {
			mark = eval.Marks[i]
		}

		switch mark {
		case typing.MarkCorrect:
			b.WriteString(correctStyle.Render(string(r)))
		case typing.MarkIncorrect:
			b.WriteString(incorrectStyle.Render(string(r)))
		default:
			if !cursorPlaced {
				b.WriteString(cursorStyle.Render(string(r)))
				cursorPlaced = true
			} else {
				b.WriteString(pendingStyle.Render(string(r)))
			}
		}
	}
	return b.String()
}

func scheduleTick() tea.Cmd {
	return tea.Tick(clockTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Run drives one started session to completion and reports whether the user
// abandoned it.
func Run(session *typing.Session) (abandoned bool, err error) {
	model := NewModel(session)
	program := tea.NewProgram(model)
	final, err := program.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(*Model); ok {
		return m.Abandoned(), nil
	}
	return model.Abandoned(), nil
}
