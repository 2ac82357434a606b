package quiz

import "quizgen/internal/question"

// IsCorrect grades one answer against a question.
//
// Non-matching questions compare the string forms after trimming surrounding
// whitespace and folding case, so " paris " matches "Paris" and a boolean true
// matches the text "True". Inner whitespace still counts. Matching questions require every stem
// to map to its correct option and the mapping to hold exactly one entry per
// stem; partial or padded mappings never grade correct.
func IsCorrect(q question.Question, answer question.Answer) bool {
	if answer.IsZero() {
		return false
	}
	if q.QuestionType == question.Matching {
		return matchingCorrect(q, answer)
	}
	if answer.Kind() == question.KindMatching {
		return false
	}
	return question.NormalizeAnswerText(answer.String()) == question.NormalizeAnswerText(q.CorrectAnswer.String())
}

func matchingCorrect(q question.Question, answer question.Answer) bool {
	if answer.Kind() != question.KindMatching {
		return false
	}
	for _, stem := range q.Stems {
		submitted, ok := answer.Pair(stem)
		if !ok {
			return false
		}
		expected, ok := q.CorrectAnswer.Pair(stem)
		if !ok || submitted != expected {
			return false
		}
	}
	// Extra keys would otherwise slip through the per-stem loop.
	return answer.Len() == len(q.Stems)
}
