package testutil

import "quizgen/internal/question"

// MultipleChoice builds a valid multiple-choice question.
func MultipleChoice(id, text string, options []string, answer string) question.Question {
	return question.Question{
		ID:            id,
		QuestionText:  text,
		QuestionType:  question.MultipleChoice,
		Options:       append([]string(nil), options...),
		CorrectAnswer: question.TextAnswer(answer),
	}
}

// TrueFalse builds a valid true/false question.
func TrueFalse(id, text string, answer bool) question.Question {
	return question.Question{
		ID:            id,
		QuestionText:  text,
		QuestionType:  question.TrueFalse,
		CorrectAnswer: question.BoolAnswer(answer),
	}
}

// FillInTheBlank builds a valid fill-in-the-blank question.
func FillInTheBlank(id, text, answer string) question.Question {
	return question.Question{
		ID:            id,
		QuestionText:  text,
		QuestionType:  question.FillInTheBlank,
		CorrectAnswer: question.TextAnswer(answer),
	}
}

// Matching builds a matching question whose stems and options follow the
// order of pairs, each pair being {stem, option}.
func Matching(id, text string, pairs ...[2]string) question.Question {
	q := question.Question{
		ID:           id,
		QuestionText: text,
		QuestionType: question.Matching,
	}
	mapping := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		q.Stems = append(q.Stems, pair[0])
		q.Options = append(q.Options, pair[1])
		mapping[pair[0]] = pair[1]
	}
	q.CorrectAnswer = question.MatchingAnswer(mapping)
	return q
}

// Questions returns a valid mixed set: a choice question, a true/false
// question, and a matching question with ids q1, q2, q3.
func Questions() []question.Question {
	matching := Matching("q3", "Match each planet to its order.",
		[2]string{"Mercury", "first"},
		[2]string{"Venus", "second"},
	)
	matching.Explanation = "Closest to the sun first."
	return []question.Question{
		MultipleChoice("q1", "What is the capital of France?", []string{"Berlin", "Paris", "Rome"}, "Paris"),
		TrueFalse("q2", "Water boils at 100C at sea level.", true),
		matching,
	}
}
