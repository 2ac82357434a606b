package quiz

import (
	"fmt"
	"strings"

	"quizgen/internal/question"
)

const (
	labelTrue       = "صواب"
	labelFalse      = "خطأ"
	labelUnanswered = "لم تتم الإجابة"
)

// FormatAnswer renders an answer for display. Matching answers follow the
// question's stem order, one "stem: option" line per stem.
func FormatAnswer(q question.Question, answer question.Answer) string {
	switch answer.Kind() {
	case question.KindNone:
		return labelUnanswered
	case question.KindBool:
		value, _ := answer.Bool()
		return BoolLabel(value)
	case question.KindMatching:
		lines := make([]string, 0, answer.Len())
		for _, stem := range q.Stems {
			if option, ok := answer.Pair(stem); ok {
				lines = append(lines, fmt.Sprintf("%s: %s", stem, option))
			}
		}
		return strings.Join(lines, "\n")
	default:
		return answer.String()
	}
}

// BoolLabel returns the display label for a true/false value.
func BoolLabel(value bool) string {
	if value {
		return labelTrue
	}
	return labelFalse
}
