package quizui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quizgen/internal/question"
	"quizgen/internal/quiz"
)

// Model drives a quiz.Session from keyboard input.
type Model struct {
	session *quiz.Session
	cursor  int
	stem    int
	input   textinput.Model
	message string
	noColor bool
	aborted bool
}

// Options configures the model.
type Options struct {
	NoColor bool
}

// NewModel wraps a session positioned at its first question.
func NewModel(session *quiz.Session, opts Options) Model {
	input := textinput.New()
	input.Placeholder = "اكتب الإجابة"
	input.CharLimit = 200
	input.Focus()
	return Model{session: session, input: input, noColor: opts.NoColor}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Aborted reports whether the user quit before finishing.
func (m Model) Aborted() bool {
	return m.aborted
}

// Update handles key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	q, ok := m.session.Current()
	if !ok {
		return m, tea.Quit
	}

	if q.QuestionType == question.FillInTheBlank {
		if key.Type == tea.KeyEnter {
			return m.submit(question.TextAnswer(m.input.Value()))
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	choices := choicesFor(q)
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case "tab", "right":
		if q.QuestionType == question.Matching {
			m.stem = (m.stem + 1) % len(q.Stems)
		}
	case "shift+tab", "left":
		if q.QuestionType == question.Matching {
			m.stem = (m.stem + len(q.Stems) - 1) % len(q.Stems)
		}
	case "enter", " ":
		return m.choose(q, choices)
	}
	return m, nil
}

func (m Model) choose(q question.Question, choices []string) (tea.Model, tea.Cmd) {
	if len(choices) == 0 {
		return m, nil
	}
	switch {
	case q.QuestionType == question.TrueFalse:
		return m.submit(question.BoolAnswer(m.cursor == 0))
	case q.QuestionType == question.Matching:
		if err := m.session.SelectMatch(q.Stems[m.stem], choices[m.cursor]); err != nil {
			m.message = err.Error()
			return m, nil
		}
		m.message = ""
		if m.session.CanSubmit() {
			return m.submit(question.Answer{})
		}
		m.stem = nextUnmatched(q, m.session.Pending(), m.stem)
		m.cursor = 0
		return m, nil
	default:
		return m.submit(question.TextAnswer(choices[m.cursor]))
	}
}

// submit records value (unless it is zero, as for matching questions whose
// pending answer is built pair by pair) and advances the session.
func (m Model) submit(value question.Answer) (tea.Model, tea.Cmd) {
	if !value.IsZero() {
		if err := m.session.SelectAnswer(value); err != nil {
			m.message = err.Error()
			return m, nil
		}
	}
	if err := m.session.Submit(); err != nil {
		var validationErr *question.ValidationError
		if errors.As(err, &validationErr) {
			m.message = validationErr.Message
		} else {
			m.message = err.Error()
		}
		return m, nil
	}
	m.cursor = 0
	m.stem = 0
	m.message = ""
	m.input.Reset()
	if m.session.State() == quiz.StateCompleted {
		return m, tea.Quit
	}
	return m, nil
}

func choicesFor(q question.Question) []string {
	if q.QuestionType == question.TrueFalse {
		return []string{quiz.BoolLabel(true), quiz.BoolLabel(false)}
	}
	return q.Options
}

func nextUnmatched(q question.Question, pending question.Answer, from int) int {
	for offset := 1; offset <= len(q.Stems); offset++ {
		index := (from + offset) % len(q.Stems)
		if _, ok := pending.Pair(q.Stems[index]); !ok {
			return index
		}
	}
	return from
}
