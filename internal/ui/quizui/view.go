package quizui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizgen/internal/question"
	"quizgen/internal/report"
)

var (
	colorHeading = lipgloss.Color("33")
	colorCursor  = lipgloss.Color("212")
	colorMuted   = lipgloss.Color("244")
	colorError   = lipgloss.Color("160")
)

// View renders the current question, or the result once the quiz is done.
func (m Model) View() string {
	if result, ok := m.session.Result(); ok {
		return report.Render(result, report.Options{NoColor: m.noColor})
	}
	q, ok := m.session.Current()
	if !ok {
		return ""
	}
	position, total := m.session.Progress()
	sections := []string{
		stylize(fmt.Sprintf("Question %d/%d", position, total), m.noColor, colorHeading),
		q.QuestionText,
		"",
	}
	switch q.QuestionType {
	case question.FillInTheBlank:
		sections = append(sections, m.input.View())
	case question.Matching:
		sections = append(sections, m.renderStems(q), "", m.renderChoices(choicesFor(q)))
	default:
		sections = append(sections, m.renderChoices(choicesFor(q)))
	}
	if m.message != "" {
		sections = append(sections, "", stylize(m.message, m.noColor, colorError))
	}
	sections = append(sections, "", stylize(helpFor(q), m.noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderChoices(choices []string) string {
	lines := make([]string, 0, len(choices))
	for i, choice := range choices {
		if i == m.cursor {
			lines = append(lines, stylize("> "+choice, m.noColor, colorCursor))
			continue
		}
		lines = append(lines, "  "+choice)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStems(q question.Question) string {
	pending := m.session.Pending()
	lines := make([]string, 0, len(q.Stems))
	for i, stem := range q.Stems {
		option, ok := pending.Pair(stem)
		if !ok {
			option = "?"
		}
		line := fmt.Sprintf("%s → %s", stem, option)
		if i == m.stem {
			lines = append(lines, stylize("* "+line, m.noColor, colorCursor))
			continue
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}

func helpFor(q question.Question) string {
	switch q.QuestionType {
	case question.FillInTheBlank:
		return "enter: submit • esc: quit"
	case question.Matching:
		return "↑/↓: option • tab: next item • enter: match • esc: quit"
	default:
		return "↑/↓: move • enter: answer • esc: quit"
	}
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
