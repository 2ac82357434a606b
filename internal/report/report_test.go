package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quizgen/internal/question"
	"quizgen/internal/quiz"
)

func sampleResult() quiz.Result {
	questions := []question.Question{
		{
			ID:            "q1",
			QuestionText:  "What is the capital of France?",
			QuestionType:  question.MultipleChoice,
			Options:       []string{"Berlin", "Paris"},
			CorrectAnswer: question.TextAnswer("Paris"),
			Explanation:   "Paris is the capital.",
		},
		{
			ID:            "q2",
			QuestionText:  "The sun is a planet.",
			QuestionType:  question.TrueFalse,
			CorrectAnswer: question.BoolAnswer(false),
		},
		{
			ID:           "q3",
			QuestionText: "Match each planet to its order.",
			QuestionType: question.Matching,
			Stems:        []string{"Mercury", "Venus"},
			Options:      []string{"first", "second"},
			CorrectAnswer: question.MatchingAnswer(map[string]string{
				"Mercury": "first",
				"Venus":   "second",
			}),
		},
	}
	answers := []quiz.UserAnswer{
		{QuestionID: "q1", Answer: question.TextAnswer("Paris")},
		{QuestionID: "q2", Answer: question.BoolAnswer(true)},
		{QuestionID: "q3", Answer: question.MatchingAnswer(map[string]string{"Mercury": "second", "Venus": "first"})},
	}
	return quiz.Grade(questions, answers)
}

func TestRenderPlain(t *testing.T) {
	out := Render(sampleResult(), Options{NoColor: true})
	for _, want := range []string{
		"Score: 33.3% (poor)",
		"Correct: 1  Incorrect: 2  Total: 3",
		"✓ Q01 What is the capital of France?",
		"✗ Q02 The sun is a planet.",
		"Your answer: صواب",
		"Correct answer: خطأ",
		"Correct answer: Mercury: first\n    Venus: second",
		"  Paris is the capital.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no ANSI escapes with NoColor")
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "quiz.json")
	file := NewFile(sampleResult(), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	if err := SaveFile(path, file); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != file.ID || !loaded.CompletedAt.Equal(file.CompletedAt) {
		t.Fatalf("unexpected metadata: %+v", loaded)
	}
	if loaded.Result.CorrectAnswers != 1 || len(loaded.Result.Answers) != 3 {
		t.Fatalf("unexpected result: %+v", loaded.Result)
	}
	if pair, _ := loaded.Result.Answers[2].Answer.Pair("Venus"); pair != "first" {
		t.Fatalf("expected matching answer to survive, got %q", pair)
	}
}

func TestRenderBankListsEveryQuestion(t *testing.T) {
	result := sampleResult()
	questions := make([]question.Question, 0, len(result.Questions))
	questions = append(questions, result.Questions...)

	out := RenderBank(questions, Options{NoColor: true})
	for _, want := range []string{"ID", "Type", "Question", "q1", "multiple_choice", "q3", "Match each planet to its order."} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in bank table:\n%s", want, out)
		}
	}
	if got := RenderBank(nil, Options{NoColor: true}); got != "Question bank is empty\n" {
		t.Fatalf("unexpected empty bank output %q", got)
	}
}
