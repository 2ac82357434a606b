package question

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// EditOption replaces the option at index. When the old text was the correct
// answer of a choice question, or a mapped value of a matching question, the
// answer follows the edit so correctness tracks the option's position.
func EditOption(q Question, index int, newText string) (Question, error) {
	if index < 0 || index >= len(q.Options) {
		return Question{}, &RangeError{Field: "option index", Value: strconv.Itoa(index)}
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return Question{}, &ValidationError{Field: "option", Message: "must not be empty"}
	}
	for i, option := range q.Options {
		if i != index && option == newText {
			return Question{}, &ValidationError{Field: "option", Message: fmt.Sprintf("duplicate option %q", newText)}
		}
	}

	edited := q.Clone()
	oldText := edited.Options[index]
	edited.Options[index] = newText

	switch {
	case edited.QuestionType.IsChoice():
		if current, ok := edited.CorrectAnswer.Text(); ok && current == oldText {
			edited.CorrectAnswer = TextAnswer(newText)
		}
	case edited.QuestionType == Matching:
		pairs, _ := edited.CorrectAnswer.Pairs()
		for stem, option := range pairs {
			if option == oldText {
				pairs[stem] = newText
			}
		}
		edited.CorrectAnswer = MatchingAnswer(pairs)
	}
	return edited, nil
}

// EditStem replaces the matching stem at index and re-keys the correct answer.
func EditStem(q Question, index int, newText string) (Question, error) {
	if q.QuestionType != Matching {
		return Question{}, &ValidationError{Field: "stem", Message: fmt.Sprintf("only %s questions have stems", Matching)}
	}
	if index < 0 || index >= len(q.Stems) {
		return Question{}, &RangeError{Field: "stem index", Value: strconv.Itoa(index)}
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return Question{}, &ValidationError{Field: "stem", Message: "must not be empty"}
	}
	for i, stem := range q.Stems {
		if i != index && stem == newText {
			return Question{}, &ValidationError{Field: "stem", Message: fmt.Sprintf("duplicate stem %q", newText)}
		}
	}

	edited := q.Clone()
	oldText := edited.Stems[index]
	edited.Stems[index] = newText
	pairs, _ := edited.CorrectAnswer.Pairs()
	if option, ok := pairs[oldText]; ok {
		delete(pairs, oldText)
		pairs[newText] = option
	}
	edited.CorrectAnswer = MatchingAnswer(pairs)
	return edited, nil
}

// SetCorrectAnswer replaces the correct answer of a non-matching question.
func SetCorrectAnswer(q Question, value Answer) (Question, error) {
	switch {
	case q.QuestionType.IsChoice():
		text, ok := value.Text()
		if !ok {
			return Question{}, &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("expected text, got %s", value.Kind())}
		}
		if !slices.Contains(q.Options, text) {
			return Question{}, &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("%q is not one of the options", text)}
		}
	case q.QuestionType == TrueFalse:
		if _, ok := value.Bool(); !ok {
			return Question{}, &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("expected boolean, got %s", value.Kind())}
		}
	case q.QuestionType == FillInTheBlank:
		text, ok := value.Text()
		if !ok {
			return Question{}, &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("expected text, got %s", value.Kind())}
		}
		if strings.TrimSpace(text) == "" {
			return Question{}, &ValidationError{Field: "correctAnswer", Message: "must not be empty"}
		}
		value = TextAnswer(strings.TrimSpace(text))
	case q.QuestionType == Matching:
		return Question{}, &ValidationError{Field: "correctAnswer", Message: "matching answers are edited one pair at a time"}
	default:
		return Question{}, &ValidationError{Field: "questionType", Message: fmt.Sprintf("unsupported type %q", q.QuestionType)}
	}
	edited := q.Clone()
	edited.CorrectAnswer = value.Clone()
	return edited, nil
}

// SetMatchingPair maps stem to option in a matching question's correct answer.
func SetMatchingPair(q Question, stem, option string) (Question, error) {
	if q.QuestionType != Matching {
		return Question{}, &ValidationError{Field: "correctAnswer", Message: fmt.Sprintf("pairs only apply to %s questions", Matching)}
	}
	if !q.HasStem(stem) {
		return Question{}, &RangeError{Field: "stem", Value: strconv.Quote(stem)}
	}
	if !q.HasOption(option) {
		return Question{}, &RangeError{Field: "option", Value: strconv.Quote(option)}
	}
	edited := q.Clone()
	edited.CorrectAnswer = edited.CorrectAnswer.WithPair(stem, option)
	return edited, nil
}

// SetQuestionText replaces the prompt.
func SetQuestionText(q Question, text string) (Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Question{}, &ValidationError{Field: "questionText", Message: "must not be empty"}
	}
	edited := q.Clone()
	edited.QuestionText = text
	return edited, nil
}

// SetExplanation replaces the explanation; an empty value clears it.
func SetExplanation(q Question, text string) Question {
	edited := q.Clone()
	edited.Explanation = strings.TrimSpace(text)
	return edited
}
