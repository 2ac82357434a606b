package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"quizgen/internal/question"
)

// State identifies where a session is in its lifecycle.
type State int

const (
	// StateAwaitingAnswer waits for an answer to the current question.
	StateAwaitingAnswer State = iota
	// StateCompleted holds the final result; no further transitions exist.
	StateCompleted
)

// String returns a readable state name.
func (s State) String() string {
	switch s {
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session presents questions one at a time, collects one answer per question,
// and grades the full answer list when the last answer is submitted. There is
// no way back to a previous question. Sessions are not safe for concurrent use.
type Session struct {
	questions []question.Question
	index     int
	pending   question.Answer
	answers   []UserAnswer
	result    *Result
}

// NewSession starts a session at the first question. The questions are
// snapshotted so later edits by the caller do not leak into the session.
func NewSession(questions []question.Question) (*Session, error) {
	if len(questions) == 0 {
		return nil, &question.ConfigurationError{Message: "a quiz needs at least one question"}
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if _, exists := seen[q.ID]; exists {
			return nil, &question.ConfigurationError{Message: fmt.Sprintf("duplicate question id %q", q.ID)}
		}
		seen[q.ID] = struct{}{}
	}
	return &Session{
		questions: question.CloneAll(questions),
		answers:   make([]UserAnswer, 0, len(questions)),
	}, nil
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	if s.result != nil {
		return StateCompleted
	}
	return StateAwaitingAnswer
}

// Index returns the zero-based index of the current question.
func (s *Session) Index() int {
	return s.index
}

// Len returns the number of questions in the session.
func (s *Session) Len() int {
	return len(s.questions)
}

// Progress returns the 1-based position of the current question and the total.
func (s *Session) Progress() (int, int) {
	if s.result != nil {
		return len(s.questions), len(s.questions)
	}
	return s.index + 1, len(s.questions)
}

// Current returns the question awaiting an answer.
func (s *Session) Current() (question.Question, bool) {
	if s.result != nil {
		return question.Question{}, false
	}
	return s.questions[s.index].Clone(), true
}

// Pending returns the answer selected so far for the current question.
func (s *Session) Pending() question.Answer {
	return s.pending.Clone()
}

// SelectAnswer replaces the pending answer of a non-matching question.
// Choice answers must be one of the options; true/false answers must be
// booleans; fill-in answers must be text.
func (s *Session) SelectAnswer(value question.Answer) error {
	q, err := s.current()
	if err != nil {
		return err
	}
	switch {
	case q.QuestionType == question.Matching:
		return &question.ValidationError{Field: "answer", Message: "matching answers are selected one stem at a time"}
	case q.QuestionType.IsChoice():
		text, ok := value.Text()
		if !ok {
			return &question.ValidationError{Field: "answer", Message: fmt.Sprintf("expected text, got %s", value.Kind())}
		}
		if !q.HasOption(text) {
			return &question.RangeError{Field: "option", Value: strconv.Quote(text)}
		}
	case q.QuestionType == question.TrueFalse:
		if _, ok := value.Bool(); !ok {
			return &question.ValidationError{Field: "answer", Message: fmt.Sprintf("expected boolean, got %s", value.Kind())}
		}
	case q.QuestionType == question.FillInTheBlank:
		text, ok := value.Text()
		if !ok {
			return &question.ValidationError{Field: "answer", Message: fmt.Sprintf("expected text, got %s", value.Kind())}
		}
		if strings.TrimSpace(text) == "" {
			return &question.ValidationError{Field: "answer", Message: "must not be empty"}
		}
	}
	s.pending = value.Clone()
	return nil
}

// SelectMatch assigns option to stem in the pending answer of a matching question.
func (s *Session) SelectMatch(stem, option string) error {
	q, err := s.current()
	if err != nil {
		return err
	}
	if q.QuestionType != question.Matching {
		return &question.ValidationError{Field: "answer", Message: fmt.Sprintf("stems only apply to %s questions", question.Matching)}
	}
	if !q.HasStem(stem) {
		return &question.RangeError{Field: "stem", Value: strconv.Quote(stem)}
	}
	if !q.HasOption(option) {
		return &question.RangeError{Field: "option", Value: strconv.Quote(option)}
	}
	s.pending = s.pending.WithPair(stem, option)
	return nil
}

// CanSubmit reports whether the pending answer is complete for the current question.
func (s *Session) CanSubmit() bool {
	q, err := s.current()
	if err != nil {
		return false
	}
	return complete(q, s.pending)
}

// Submit records the pending answer and advances, completing the session
// after the last question.
func (s *Session) Submit() error {
	q, err := s.current()
	if err != nil {
		return err
	}
	if !complete(q, s.pending) {
		if q.QuestionType == question.Matching {
			return &question.ValidationError{
				Field:   "answer",
				Message: fmt.Sprintf("%d of %d stems matched", s.pending.Len(), len(q.Stems)),
			}
		}
		return &question.ValidationError{Field: "answer", Message: "no answer selected"}
	}
	s.answers = append(s.answers, UserAnswer{QuestionID: q.ID, Answer: s.pending})
	s.pending = question.Answer{}
	if s.index+1 < len(s.questions) {
		s.index++
		return nil
	}
	result := Grade(s.questions, s.answers)
	s.result = &result
	return nil
}

// Result returns a copy of the final result once the session is complete.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return s.result.Clone(), true
}

func (s *Session) current() (question.Question, error) {
	if s.result != nil {
		return question.Question{}, &question.ValidationError{Field: "session", Message: "quiz is already completed"}
	}
	return s.questions[s.index], nil
}

func complete(q question.Question, pending question.Answer) bool {
	if q.QuestionType == question.Matching {
		return pending.Kind() == question.KindMatching && pending.Len() == len(q.Stems)
	}
	return !pending.IsZero()
}
