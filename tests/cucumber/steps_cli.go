//go:build cucumber

package cucumber

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"quizgen/internal/cli"
	"quizgen/internal/config"
)

const validConfigYAML = `version: 1
defaults:
  question_type: multiple_choice
  count: 3
bank:
  backend: file
log:
  level: warn
`

const invalidConfigYAML = `version: 1
defaults:
  count: 42
`

// aGitRepositoryWithValidConfig sets up a temp repo with a valid config and
// makes it the working directory.
func (s *featureState) aGitRepositoryWithValidConfig() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "quizgen-feature-*")
	if err != nil {
		return fmt.Errorf("create temp repo: %w", err)
	}
	s.repoDir = dir
	s.configPath = config.ConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := s.writeConfig(validConfigYAML); err != nil {
		return err
	}
	if err := s.initGitRepo(dir); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

// llmCredentialsAreMissing clears the generation credentials.
func (s *featureState) llmCredentialsAreMissing() error {
	if err := s.setEnv("LLM_PROVIDER", ""); err != nil {
		return err
	}
	return s.setEnv("LLM_API_KEY", "")
}

// theConfigIsInvalid replaces the config with an out-of-range count.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.aGitRepositoryWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig(invalidConfigYAML)
}

func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path not initialized")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "quizgen" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// initGitRepo initializes a git repo with a README.
func (s *featureState) initGitRepo(dir string) error {
	if err := s.runGit(dir, "-c", "init.defaultBranch=main", "init"); err != nil {
		return err
	}
	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("Study notes about the solar system."), 0o644); err != nil {
		return fmt.Errorf("write README: %w", err)
	}
	if err := s.runGit(dir, "add", "README.md"); err != nil {
		return err
	}
	return s.runGit(dir, "commit", "-m", "initial")
}

// runGit executes git commands in a repo with fixed author metadata.
func (s *featureState) runGit(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s failed: %v (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

// theOutputListsCommands asserts the output contains expected command names.
func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

// theExitCodeIsNonZero asserts that the CLI returned an error code.
func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

// theErrorMessageMentions checks the error output for a hint.
func (s *featureState) theErrorMessageMentions(text string) error {
	if errOutput := s.stderr.String(); !strings.Contains(errOutput, text) {
		return fmt.Errorf("expected error to mention %q, got %q", text, errOutput)
	}
	return nil
}
