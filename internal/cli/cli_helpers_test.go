package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quizgen/internal/config"
)

const testConfig = `version: 1
bank:
  backend: file
log:
  level: warn
`

const testQuestions = `{"questions":[
 {"id":"q1","questionText":"Capital of France?","questionType":"multiple_choice","options":["Berlin","Paris"],"correctAnswer":"Paris","explanation":"Paris is the capital."},
 {"id":"q2","questionText":"The sun is a star.","questionType":"true_false","correctAnswer":true}
]}`

// writeWorkspace creates a repo root with a config and returns the config path.
func writeWorkspace(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	path := config.ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// runCLI runs the CLI with input on stdin and stdout treated as a non-TTY.
func runCLI(t *testing.T, input string, args ...string) (int, string, string) {
	t.Helper()
	origStdin, origTerminal := stdin, isTerminal
	t.Cleanup(func() {
		stdin = origStdin
		isTerminal = origTerminal
	})
	stdin = strings.NewReader(input)
	isTerminal = func(io.Writer) bool { return false }

	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}
