package question

import "slices"

// Type identifies the closed set of supported question kinds.
type Type string

const (
	MultipleChoice Type = "multiple_choice"
	TrueFalse      Type = "true_false"
	FillInTheBlank Type = "fill_in_the_blank"
	Matching       Type = "matching"
	// CauseAndEffect grades and renders like MultipleChoice; only the prompt wording differs.
	CauseAndEffect Type = "cause_and_effect"
)

// Types lists every supported question type in display order.
var Types = []Type{MultipleChoice, TrueFalse, FillInTheBlank, Matching, CauseAndEffect}

// ParseType converts a wire value into a Type.
func ParseType(value string) (Type, bool) {
	candidate := Type(NormalizeAnswerText(value))
	if slices.Contains(Types, candidate) {
		return candidate, true
	}
	return "", false
}

// IsChoice reports whether answers are picked from Options.
func (t Type) IsChoice() bool {
	return t == MultipleChoice || t == CauseAndEffect
}

// AnswerKind returns the answer shape questions of this type carry.
func (t Type) AnswerKind() AnswerKind {
	switch t {
	case TrueFalse:
		return KindBool
	case Matching:
		return KindMatching
	case MultipleChoice, CauseAndEffect, FillInTheBlank:
		return KindText
	default:
		return KindNone
	}
}

// Question is a single quiz item in its validated, canonical shape.
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	QuestionText  string   `json:"questionText" yaml:"questionText"`
	QuestionType  Type     `json:"questionType" yaml:"questionType"`
	Options       []string `json:"options,omitempty" yaml:"options,omitempty"`
	Stems         []string `json:"stems,omitempty" yaml:"stems,omitempty"`
	CorrectAnswer Answer   `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Clone returns a deep copy so edits never alias another holder's slices or maps.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	q.Stems = slices.Clone(q.Stems)
	q.CorrectAnswer = q.CorrectAnswer.Clone()
	return q
}

// CloneAll deep-copies a question sequence.
func CloneAll(questions []Question) []Question {
	if questions == nil {
		return nil
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		out[i] = q.Clone()
	}
	return out
}

// HasOption reports whether value is one of the question's options.
func (q Question) HasOption(value string) bool {
	return slices.Contains(q.Options, value)
}

// HasStem reports whether value is one of the question's stems.
func (q Question) HasStem(value string) bool {
	return slices.Contains(q.Stems, value)
}
