// Package config loads runtime configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config tunes the store and its derived-view components.
type Config struct {
	LibraryDir         string  `yaml:"library_dir" env:"PROMPT_VAULT_DIR"`
	UndoDepth          int     `yaml:"undo_depth" env:"PROMPT_VAULT_UNDO_DEPTH" env-default:"20"`
	PageSize           int     `yaml:"page_size" env:"PROMPT_VAULT_PAGE_SIZE" env-default:"10"`
	DuplicateThreshold float64 `yaml:"duplicate_threshold" env:"PROMPT_VAULT_DUPLICATE_THRESHOLD" env-default:"0.7"`
	SuggestionLimit    int     `yaml:"suggestion_limit" env:"PROMPT_VAULT_SUGGESTION_LIMIT" env-default:"6"`
	CacheSize          int     `yaml:"cache_size" env:"PROMPT_VAULT_CACHE_SIZE" env-default:"128"`
}

// Load reads configuration from path when the file exists, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
