package quiz

import (
	"errors"
	"testing"

	"quizgen/internal/question"
)

func TestNewSessionRejectsEmpty(t *testing.T) {
	session, err := NewSession(nil)
	var configErr *question.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if session != nil {
		t.Fatalf("expected no session")
	}
}

func TestNewSessionRejectsDuplicateIDs(t *testing.T) {
	_, err := NewSession([]question.Question{capitalQuestion("a"), capitalQuestion("a")})
	var configErr *question.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSessionScoresFiveQuestionsThreeCorrect(t *testing.T) {
	questions := make([]question.Question, 0, 5)
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5"} {
		questions = append(questions, capitalQuestion(id))
	}
	session, err := NewSession(questions)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	picks := []string{"Paris", "Rome", "Paris", "Berlin", "Paris"}
	for i, pick := range picks {
		position, total := session.Progress()
		if position != i+1 || total != 5 {
			t.Fatalf("unexpected progress %d/%d at step %d", position, total, i)
		}
		if err := session.SelectAnswer(question.TextAnswer(pick)); err != nil {
			t.Fatalf("select %q: %v", pick, err)
		}
		if err := session.Submit(); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if session.State() != StateCompleted {
		t.Fatalf("expected completed state, got %s", session.State())
	}
	result, ok := session.Result()
	if !ok {
		t.Fatalf("expected result")
	}
	if result.Score != 60.0 || result.CorrectAnswers != 3 || result.TotalQuestions != 5 {
		t.Fatalf("unexpected result: score=%v correct=%d total=%d", result.Score, result.CorrectAnswers, result.TotalQuestions)
	}
	if len(result.Answers) != 5 || result.Answers[1].QuestionID != "q2" {
		t.Fatalf("unexpected answers: %+v", result.Answers)
	}
}

func TestSessionRejectsIncompleteSubmit(t *testing.T) {
	session, err := NewSession([]question.Question{capitalQuestion("a"), capitalQuestion("b")})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if session.CanSubmit() {
		t.Fatalf("expected submit disabled without an answer")
	}
	var validationErr *question.ValidationError
	if err := session.Submit(); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if session.Index() != 0 {
		t.Fatalf("expected index to stay at 0, got %d", session.Index())
	}
}

func TestSessionRejectsUnknownOptionWithoutMutation(t *testing.T) {
	session, err := NewSession([]question.Question{capitalQuestion("a")})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.SelectAnswer(question.TextAnswer("Paris")); err != nil {
		t.Fatalf("select: %v", err)
	}
	var rangeErr *question.RangeError
	if err := session.SelectAnswer(question.TextAnswer("Lyon")); !errors.As(err, &rangeErr) {
		t.Fatalf("expected range error, got %v", err)
	}
	if text, _ := session.Pending().Text(); text != "Paris" {
		t.Fatalf("expected pending answer to stay Paris, got %q", text)
	}
	var validationErr *question.ValidationError
	if err := session.SelectAnswer(question.BoolAnswer(true)); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for wrong kind, got %v", err)
	}
}

func TestSessionMatchingNeedsEveryStem(t *testing.T) {
	session, err := NewSession([]question.Question{planetQuestion("m1")})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	var validationErr *question.ValidationError
	if err := session.SelectAnswer(question.TextAnswer("first")); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for whole-answer select, got %v", err)
	}
	var rangeErr *question.RangeError
	if err := session.SelectMatch("Mars", "first"); !errors.As(err, &rangeErr) {
		t.Fatalf("expected range error for unknown stem, got %v", err)
	}
	if err := session.SelectMatch("Mercury", "zeroth"); !errors.As(err, &rangeErr) {
		t.Fatalf("expected range error for unknown option, got %v", err)
	}
	if session.Pending().Len() != 0 {
		t.Fatalf("rejected selections must not change the pending answer")
	}

	for _, pair := range [][2]string{{"Mercury", "first"}, {"Venus", "second"}} {
		if err := session.SelectMatch(pair[0], pair[1]); err != nil {
			t.Fatalf("select match: %v", err)
		}
	}
	if session.CanSubmit() {
		t.Fatalf("expected submit disabled with one stem unmatched")
	}
	if err := session.Submit(); !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error for partial mapping, got %v", err)
	}

	if err := session.SelectMatch("Earth", "third"); err != nil {
		t.Fatalf("select match: %v", err)
	}
	if !session.CanSubmit() {
		t.Fatalf("expected submit enabled with all stems matched")
	}
	if err := session.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, _ := session.Result()
	if result.Score != 100 {
		t.Fatalf("expected full score, got %v", result.Score)
	}
}

func TestSessionRejectsTransitionsAfterCompletion(t *testing.T) {
	session, err := NewSession([]question.Question{capitalQuestion("a")})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.SelectAnswer(question.TextAnswer("Paris")); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := session.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, ok := session.Current(); ok {
		t.Fatalf("expected no current question after completion")
	}
	if err := session.SelectAnswer(question.TextAnswer("Paris")); err == nil {
		t.Fatalf("expected error selecting after completion")
	}
	if err := session.Submit(); err == nil {
		t.Fatalf("expected error submitting after completion")
	}
}

func TestSessionSnapshotsQuestions(t *testing.T) {
	questions := []question.Question{capitalQuestion("a")}
	session, err := NewSession(questions)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	questions[0].Options[1] = "Lyon"
	current, _ := session.Current()
	if current.Options[1] != "Paris" {
		t.Fatalf("expected session to keep its own copy, got %q", current.Options[1])
	}
}
