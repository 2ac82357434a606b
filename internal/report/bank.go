package report

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"quizgen/internal/question"
)

const maxQuestionWidth = 60

// RenderBank lists bank questions as an id/type/question table.
func RenderBank(questions []question.Question, opts Options) string {
	if len(questions) == 0 {
		return "Question bank is empty\n"
	}
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, table.Row{q.ID, string(q.QuestionType), firstLine(q.QuestionText)})
	}
	columns := []table.Column{
		{Title: "ID", Width: columnWidth("ID", rows, 0, 0)},
		{Title: "Type", Width: columnWidth("Type", rows, 1, 0)},
		{Title: "Question", Width: columnWidth("Question", rows, 2, maxQuestionWidth)},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithStyles(bankTableStyles(opts.NoColor)),
		table.WithHeight(len(rows)+2),
	)
	return strings.TrimRight(t.View(), " \n") + "\n"
}

func bankTableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	if noColor {
		styles.Header = styles.Header.UnsetForeground().UnsetBorderForeground()
		return styles
	}
	styles.Header = styles.Header.Foreground(colorHeading)
	return styles
}

// columnWidth sizes a column to its widest cell, capped at limit when limit > 0.
func columnWidth(title string, rows []table.Row, index, limit int) int {
	width := lipgloss.Width(title)
	for _, row := range rows {
		width = max(width, lipgloss.Width(row[index]))
	}
	if limit > 0 {
		width = min(width, limit)
	}
	return width
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
