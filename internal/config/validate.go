package config

import (
	"fmt"
	"slices"
	"strings"

	"quizgen/internal/bank"
	"quizgen/internal/generate"
	"quizgen/internal/question"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Generator.Provider != generate.ProviderOpenRouter {
		add("generator.provider", fmt.Sprintf("unsupported provider %q", cfg.Generator.Provider))
	}
	if cfg.Generator.TimeoutSeconds != nil && *cfg.Generator.TimeoutSeconds < 0 {
		add("generator.timeout_seconds", "must be >= 0")
	}
	if cfg.Generator.RequestsPerMinute < 0 {
		add("generator.requests_per_minute", "must be >= 0")
	}

	if _, ok := question.ParseType(cfg.Defaults.QuestionType); !ok {
		add("defaults.question_type", fmt.Sprintf("unsupported type %q", cfg.Defaults.QuestionType))
	}
	if cfg.Defaults.Count < generate.MinCount || cfg.Defaults.Count > generate.MaxCount {
		add("defaults.count", fmt.Sprintf("must be between %d and %d", generate.MinCount, generate.MaxCount))
	}

	if !slices.Contains(bank.Backends, bank.Backend(cfg.Bank.Backend)) {
		add("bank.backend", fmt.Sprintf("unsupported backend %q", cfg.Bank.Backend))
	}
	if cfg.Bank.Path == "" {
		add("bank.path", "is required")
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		add("log.level", fmt.Sprintf("unsupported level %q", cfg.Log.Level))
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
