package config

// Config is the parsed .quizgen/config.yml.
type Config struct {
	Version   int             `yaml:"version"`
	Generator GeneratorConfig `yaml:"generator"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	Bank      BankConfig      `yaml:"bank"`
	Log       LogConfig       `yaml:"log"`
}

// GeneratorConfig configures the question generation client.
type GeneratorConfig struct {
	Provider          string `yaml:"provider"`
	Model             string `yaml:"model"`
	BaseURL           string `yaml:"base_url"`
	TimeoutSeconds    *int   `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	RekeyIDs          bool   `yaml:"rekey_ids"`
}

// DefaultsConfig holds defaults for the generate command.
type DefaultsConfig struct {
	QuestionType string `yaml:"question_type"`
	Count        int    `yaml:"count"`
}

// BankConfig selects the question bank backend.
type BankConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}
