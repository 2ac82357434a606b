package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quizgen/internal/quiz"
)

// Options control rendering.
type Options struct {
	NoColor bool
}

const (
	colorExcellent = lipgloss.Color("34")
	colorFair      = lipgloss.Color("214")
	colorPoor      = lipgloss.Color("160")
	colorMuted     = lipgloss.Color("244")
	colorHeading   = lipgloss.Color("33")
)

// Render formats a result as a score header followed by a per-question review.
func Render(result quiz.Result, opts Options) string {
	var b strings.Builder
	b.WriteString(renderScore(result, opts.NoColor))
	b.WriteString("\n")
	b.WriteString(stylize(fmt.Sprintf("Correct: %d  Incorrect: %d  Total: %d",
		result.CorrectAnswers, result.IncorrectAnswers(), result.TotalQuestions), opts.NoColor, colorMuted))
	b.WriteString("\n")
	for i, item := range result.Review() {
		b.WriteString("\n")
		b.WriteString(renderItem(i, item, opts.NoColor))
	}
	return b.String()
}

func renderScore(result quiz.Result, noColor bool) string {
	line := fmt.Sprintf("Score: %s%% (%s)", formatScore(result.Score), result.Band())
	return stylize(line, noColor, bandColor(result.Band()))
}

func renderItem(index int, item quiz.ReviewItem, noColor bool) string {
	mark, color := "✗", colorPoor
	if item.Correct {
		mark, color = "✓", colorExcellent
	}
	lines := []string{
		stylize(mark, noColor, color) + " " + stylize(formatIndex(index)+" "+item.Question.QuestionText, noColor, colorHeading),
		"  Your answer: " + indentContinuation(quiz.FormatAnswer(item.Question, item.Answer)),
	}
	if !item.Correct {
		lines = append(lines, "  Correct answer: "+indentContinuation(quiz.FormatAnswer(item.Question, item.Question.CorrectAnswer)))
	}
	if item.Question.Explanation != "" {
		lines = append(lines, stylize("  "+item.Question.Explanation, noColor, colorMuted))
	}
	return strings.Join(lines, "\n") + "\n"
}

func bandColor(band quiz.Band) lipgloss.Color {
	switch band {
	case quiz.BandExcellent:
		return colorExcellent
	case quiz.BandFair:
		return colorFair
	default:
		return colorPoor
	}
}

// formatScore renders one decimal, dropping a trailing .0.
func formatScore(score float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(score, 'f', 1, 64), ".0")
}

// formatIndex formats a question index.
func formatIndex(index int) string {
	if index+1 >= 10 {
		return "Q" + strconv.Itoa(index+1)
	}
	return "Q0" + strconv.Itoa(index+1)
}

// indentContinuation keeps multi-line matching answers aligned.
func indentContinuation(text string) string {
	return strings.ReplaceAll(text, "\n", "\n    ")
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
