package config

import (
	"path/filepath"
	"strings"

	"quizgen/internal/bank"
	"quizgen/internal/generate"
	"quizgen/internal/question"
)

// Defaults applied by Normalize.
const (
	DefaultCount          = 3
	DefaultTimeoutSeconds = 60
	DefaultLogLevel       = "warn"
)

// DefaultLogFile is the log location relative to the repo root.
var DefaultLogFile = filepath.Join(ConfigDirName, "logs", "quizgen.log")

// Default returns a normalized config used when no config file exists.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}

// Normalize trims values and fills defaults in place.
func Normalize(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	cfg.Generator.Provider = strings.ToLower(strings.TrimSpace(cfg.Generator.Provider))
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = generate.ProviderOpenRouter
	}
	cfg.Generator.Model = strings.TrimSpace(cfg.Generator.Model)
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = generate.DefaultModel
	}
	cfg.Generator.BaseURL = strings.TrimSpace(cfg.Generator.BaseURL)
	if cfg.Generator.TimeoutSeconds == nil {
		timeout := DefaultTimeoutSeconds
		cfg.Generator.TimeoutSeconds = &timeout
	}

	cfg.Defaults.QuestionType = strings.TrimSpace(cfg.Defaults.QuestionType)
	if cfg.Defaults.QuestionType == "" {
		cfg.Defaults.QuestionType = string(question.MultipleChoice)
	}
	if cfg.Defaults.Count == 0 {
		cfg.Defaults.Count = DefaultCount
	}

	cfg.Bank.Backend = strings.ToLower(strings.TrimSpace(cfg.Bank.Backend))
	if cfg.Bank.Backend == "" {
		cfg.Bank.Backend = string(bank.BackendFile)
	}
	cfg.Bank.Path = strings.TrimSpace(cfg.Bank.Path)
	if cfg.Bank.Path == "" {
		cfg.Bank.Path = bank.DefaultPath(ConfigDirName, bank.Backend(cfg.Bank.Backend))
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	cfg.Log.File = strings.TrimSpace(cfg.Log.File)
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogFile
	}
}
