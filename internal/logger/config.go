package logger

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// loggingConfig wraps the Config for YAML parsing
type loggingConfig struct {
	Logging Config `yaml:"logging"`
}

// DefaultConfig returns the logging defaults used when no file is present.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/arena.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// LoadConfig loads logging configuration from a YAML file, falling back to
// defaults for anything unset. A missing file is not an error.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	var wrapper loggingConfig
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return config, err
	}

	loaded := wrapper.Logging
	if loaded.Level != "" {
		config.Level = loaded.Level
	}
	config.ConsoleEnabled = loaded.ConsoleEnabled
	if loaded.ConsoleFormat != "" {
		config.ConsoleFormat = loaded.ConsoleFormat
	}
	config.FileEnabled = loaded.FileEnabled
	if loaded.FilePath != "" {
		config.FilePath = loaded.FilePath
	}
	if loaded.FileFormat != "" {
		config.FileFormat = loaded.FileFormat
	}
	if loaded.FileMaxSizeMB > 0 {
		config.FileMaxSizeMB = loaded.FileMaxSizeMB
	}
	if loaded.FileMaxBackups > 0 {
		config.FileMaxBackups = loaded.FileMaxBackups
	}
	if loaded.FileMaxAgeDays > 0 {
		config.FileMaxAgeDays = loaded.FileMaxAgeDays
	}

	return config, nil
}
