package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnv loads KEY=value pairs from the .env file at root into the process
// environment. Variables that are already set keep their values; a missing
// file is not an error.
func LoadEnv(root string) error {
	path := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Timeout returns the configured request timeout. Zero disables it.
func (g GeneratorConfig) Timeout() time.Duration {
	if g.TimeoutSeconds == nil {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(*g.TimeoutSeconds) * time.Second
}
