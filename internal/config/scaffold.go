package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

generator:
  provider: "openrouter"
  model: "google/gemini-2.5-flash"
  # base_url: "https://openrouter.ai/api/v1"
  timeout_seconds: 60
  # 0 disables request pacing.
  requests_per_minute: 0
  # Replace generator ids with UUIDs.
  rekey_ids: false

defaults:
  # multiple_choice | true_false | fill_in_the_blank | matching | cause_and_effect
  question_type: "multiple_choice"
  count: 3

bank:
  # file | sqlite | duckdb
  backend: "file"
  path: ".quizgen/bank.json"

log:
  level: "warn"
  file: ".quizgen/logs/quizgen.log"
`

// Scaffold writes a commented default config. It refuses to overwrite.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
