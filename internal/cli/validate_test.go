package cli

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateConfigAndQuestions(t *testing.T) {
	configPath := writeWorkspace(t, testConfig)
	questionsPath := writeFile(t, t.TempDir(), "questions.json", testQuestions)

	code, out, errOut := runCLI(t, "", "validate", "--config", configPath, "--questions", questionsPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "Config OK") || !strings.Contains(out, "Questions OK (2)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidateReportsConfigIssues(t *testing.T) {
	configPath := writeWorkspace(t, "version: 1\ndefaults:\n  count: 42\nbank:\n  backend: redis\n")

	code, _, errOut := runCLI(t, "", "validate", "--config", configPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"Validation failed", "defaults.count", "bank.backend"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("expected %q in %q", want, errOut)
		}
	}
}

func TestValidateReportsQuestionIssues(t *testing.T) {
	configPath := writeWorkspace(t, testConfig)
	questionsPath := writeFile(t, t.TempDir(), "questions.yml", `questions:
  - id: q1
    questionText: Pick one
    questionType: multiple_choice
    options: [a, b]
    correctAnswer: c
`)

	code, _, errOut := runCLI(t, "", "validate", "--config", configPath, "--questions", questionsPath)
	if code != ExitError || !strings.Contains(errOut, "correctAnswer") {
		t.Fatalf("expected correctAnswer issue, got %d %q", code, errOut)
	}
}

func TestValidateMissingConfigFile(t *testing.T) {
	code, _, errOut := runCLI(t, "", "validate", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	if code != ExitError || !strings.Contains(errOut, "read config") {
		t.Fatalf("expected read error, got %d %q", code, errOut)
	}
}
