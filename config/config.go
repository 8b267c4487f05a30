package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"ngramkit/ngram"
)

// Config holds all configuration for the ngramkit tool.
type Config struct {
	Generate GenerateConfig `yaml:"generate"`
	Tokenize TokenizeConfig `yaml:"tokenize"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GenerateConfig holds n-gram generation settings.
type GenerateConfig struct {
	MinN      int    `yaml:"min_n"`
	MaxN      int    `yaml:"max_n"`
	MinK      int    `yaml:"min_k"`
	MaxK      int    `yaml:"max_k"`
	PadLeft   string `yaml:"pad_left"`  // empty means no left marker
	PadRight  string `yaml:"pad_right"` // empty means no right marker
	Separator string `yaml:"separator"` // joins items when printing a gram
}

// TokenizeConfig holds settings for turning raw text into items.
type TokenizeConfig struct {
	Lowercase bool `yaml:"lowercase"`
	Stopwords bool `yaml:"stopwords"`
	Stemming  bool `yaml:"stemming"`
	MinLength int  `yaml:"min_length"`
}

// CorpusConfig holds corpus discovery settings.
type CorpusConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	Unit     string   `yaml:"unit"` // "line" or "file"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Corpus units.
const (
	UnitLine = "line"
	UnitFile = "file"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generate: GenerateConfig{
			MinN:      1,
			MaxN:      3,
			MinK:      0,
			MaxK:      0,
			PadLeft:   "<s>",
			PadRight:  "</s>",
			Separator: " ",
		},
		Tokenize: TokenizeConfig{
			Lowercase: true,
			Stopwords: false,
			Stemming:  false,
			MinLength: 1,
		},
		Corpus: CorpusConfig{
			Includes: []string{"**/*.txt", "**/*.md"},
			Excludes: []string{"**/.git/**", "**/.ngram/**", "**/node_modules/**", "**/vendor/**"},
			Unit:     UnitLine,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks that the generation ranges and corpus unit are usable.
func (c *Config) Validate() error {
	g := c.Generate
	if err := ngram.Validate(g.MinN, g.MaxN, g.MinK, g.MaxK); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	switch c.Corpus.Unit {
	case UnitLine, UnitFile:
	default:
		return fmt.Errorf("corpus: unknown unit %q", c.Corpus.Unit)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ngram.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ngram.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ngram", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// CountsDBPath returns the path to the n-gram count database.
func CountsDBPath(dir string) string {
	return filepath.Join(dir, ".ngram", "counts.db")
}

// EnsureDataDir ensures the .ngram directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".ngram"), 0755)
}
