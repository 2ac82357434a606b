package question

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadFileYAML verifies YAML question files load and normalize properly.
func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yml")
	payload := `questions:
  - id: q1
    questionText: "  Is the earth round? "
    questionType: true_false
    correctAnswer: true
  - id: q2
    questionText: Match
    questionType: matching
    stems: [sun, moon]
    options: [star, satellite]
    correctAnswer:
      sun: star
      moon: satellite
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].QuestionText != "Is the earth round?" {
		t.Fatalf("expected trimmed prompt, got %q", questions[0].QuestionText)
	}
	if questions[1].CorrectAnswer.Len() != 2 {
		t.Fatalf("unexpected matching answer: %v", questions[1].CorrectAnswer)
	}
}

// TestLoadFileJSONList verifies a bare JSON list is accepted.
func TestLoadFileJSONList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	payload := `[
  {"id": "f1", "questionText": "The capital of Italy is ___", "questionType": "fill_in_the_blank", "correctAnswer": "Rome"}
]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	questions, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "f1" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

// TestLoadFileRejectsUnknownFields verifies typos in question files are caught.
func TestLoadFileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	payload := `{"questions": [{"id": "x", "question": "typo", "questionType": "true_false", "correctAnswer": true}]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestLoadFileRejectsMultipleDocuments verifies a second document is reported
// as such, whatever its shape.
func TestLoadFileRejectsMultipleDocuments(t *testing.T) {
	dir := t.TempDir()
	one := `{"id": "x", "questionText": "?", "questionType": "true_false", "correctAnswer": true}`
	cases := map[string]string{
		"questions.json": `{"questions": [` + one + `]} {"other": 1}`,
		"list.json":      `[` + one + `] [` + one + `]`,
		"questions.yml":  "- id: x\n  questionText: \"?\"\n  questionType: true_false\n  correctAnswer: true\n---\n- id: y\n",
	}
	for name, payload := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		_, err := LoadFile(path)
		if err == nil || !strings.Contains(err.Error(), "multiple documents") {
			t.Fatalf("%s: expected multiple documents error, got %v", name, err)
		}
	}
}

// TestLoadFileValidationErrors verifies invalid records surface as schema errors.
func TestLoadFileValidationErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.yml")
	payload := `- id: dup
  questionText: Q1
  questionType: multiple_choice
  options: [yes, no]
  correctAnswer: maybe
- id: dup
  questionText: Q2
  questionType: true_false
  correctAnswer: false
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := LoadFile(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if len(schemaErr.Issues) < 2 {
		t.Fatalf("expected unknown option and duplicate id issues, got %+v", schemaErr.Issues)
	}
}

// TestSaveFileRoundTrip verifies saved question files load back unchanged.
func TestSaveFileRoundTrip(t *testing.T) {
	original, err := ValidateAll([]Raw{choiceRaw(), matchingRaw()})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	for _, name := range []string{"set.json", "set.yaml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := SaveFile(path, original); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		loaded, err := LoadFile(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if len(loaded) != len(original) {
			t.Fatalf("expected %d questions, got %d", len(original), len(loaded))
		}
		for i := range loaded {
			if !loaded[i].CorrectAnswer.Equal(original[i].CorrectAnswer) || loaded[i].QuestionText != original[i].QuestionText {
				t.Fatalf("question %d changed: %+v", i, loaded[i])
			}
		}
	}
}
