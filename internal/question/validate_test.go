package question

import (
	"errors"
	"strings"
	"testing"
)

func choiceRaw() Raw {
	return Raw{
		ID:            "q1",
		QuestionText:  " What is the capital of France? ",
		QuestionType:  "multiple_choice",
		Options:       []string{"Berlin", " Paris ", "Rome", "Madrid"},
		CorrectAnswer: "paris",
		Explanation:   "Paris is the capital.",
	}
}

func matchingRaw() Raw {
	return Raw{
		ID:           "m1",
		QuestionText: "Match each planet to its order.",
		QuestionType: "matching",
		Stems:        []string{"Mercury", "Venus"},
		Options:      []string{"first", "second", "third"},
		CorrectAnswer: map[string]any{
			"Mercury": "first",
			"Venus":   "second",
		},
	}
}

// TestValidateChoiceNormalizes verifies trimming and re-pointing to the option's exact text.
func TestValidateChoiceNormalizes(t *testing.T) {
	q, err := Validate(choiceRaw())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if q.QuestionText != "What is the capital of France?" {
		t.Fatalf("expected trimmed text, got %q", q.QuestionText)
	}
	if q.Options[1] != "Paris" {
		t.Fatalf("expected trimmed option, got %q", q.Options[1])
	}
	if text, _ := q.CorrectAnswer.Text(); text != "Paris" {
		t.Fatalf("expected correct answer Paris, got %q", text)
	}
}

// TestValidateRejectsUnknownType verifies types outside the enumeration are rejected.
func TestValidateRejectsUnknownType(t *testing.T) {
	raw := choiceRaw()
	raw.QuestionType = "essay"
	_, err := Validate(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if schemaErr.Issues[0].Field != "questionType" {
		t.Fatalf("expected questionType issue, got %+v", schemaErr.Issues)
	}
}

// TestValidateRejectsShapeMismatch verifies the answer shape must follow the type.
func TestValidateRejectsShapeMismatch(t *testing.T) {
	cases := []struct {
		name string
		raw  Raw
	}{
		{name: "true_false with text", raw: Raw{ID: "t", QuestionText: "Sky is blue", QuestionType: "true_false", CorrectAnswer: "true"}},
		{name: "choice with bool", raw: Raw{ID: "c", QuestionText: "Pick", QuestionType: "cause_and_effect", Options: []string{"a", "b"}, CorrectAnswer: true}},
		{name: "fill with mapping", raw: Raw{ID: "f", QuestionText: "Fill", QuestionType: "fill_in_the_blank", CorrectAnswer: map[string]any{"a": "b"}}},
		{name: "matching with text", raw: Raw{ID: "m", QuestionText: "Match", QuestionType: "matching", Stems: []string{"a"}, Options: []string{"b"}, CorrectAnswer: "b"}},
		{name: "missing answer", raw: Raw{ID: "n", QuestionText: "None", QuestionType: "fill_in_the_blank"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.raw)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected schema error, got %v", err)
			}
			if !strings.Contains(err.Error(), "correctAnswer") {
				t.Fatalf("expected correctAnswer issue, got %v", err)
			}
		})
	}
}

// TestValidateRequiresOptionsAndStems verifies required collections per type.
func TestValidateRequiresOptionsAndStems(t *testing.T) {
	raw := choiceRaw()
	raw.Options = nil
	if _, err := Validate(raw); err == nil || !strings.Contains(err.Error(), "options") {
		t.Fatalf("expected options issue, got %v", err)
	}

	matching := matchingRaw()
	matching.Stems = nil
	if _, err := Validate(matching); err == nil || !strings.Contains(err.Error(), "stems") {
		t.Fatalf("expected stems issue, got %v", err)
	}
}

// TestValidateMatchingReferences verifies keys must be stems and values must be options.
func TestValidateMatchingReferences(t *testing.T) {
	raw := matchingRaw()
	raw.CorrectAnswer = map[string]any{"Mercury": "first", "Pluto": "second"}
	_, err := Validate(raw)
	if err == nil {
		t.Fatalf("expected error for unknown stem")
	}
	if !strings.Contains(err.Error(), `unknown stem "Pluto"`) || !strings.Contains(err.Error(), `missing stem "Venus"`) {
		t.Fatalf("unexpected error: %v", err)
	}

	raw = matchingRaw()
	raw.CorrectAnswer = map[string]any{"Mercury": "first", "Venus": "tenth"}
	if _, err := Validate(raw); err == nil || !strings.Contains(err.Error(), `unknown option "tenth"`) {
		t.Fatalf("expected unknown option error, got %v", err)
	}
}

// TestValidateTrueFalseDropsOptions verifies stray options are dropped for boolean questions.
func TestValidateTrueFalseDropsOptions(t *testing.T) {
	q, err := Validate(Raw{ID: "t1", QuestionText: "Water boils at 100C", QuestionType: "true_false", Options: []string{"yes"}, CorrectAnswer: true})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if q.Options != nil {
		t.Fatalf("expected options to be dropped, got %v", q.Options)
	}
}

// TestValidateAllRejectsDuplicateIDs verifies ids are unique within a set.
func TestValidateAllRejectsDuplicateIDs(t *testing.T) {
	first := choiceRaw()
	second := choiceRaw()
	_, err := ValidateAll([]Raw{first, second})
	if err == nil || !strings.Contains(err.Error(), `duplicate id "q1"`) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

// TestCheckRoundTrip verifies a validated question re-validates unchanged.
func TestCheckRoundTrip(t *testing.T) {
	q, err := Validate(matchingRaw())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := Check(q); err != nil {
		t.Fatalf("check: %v", err)
	}
}
