package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// ServerConfig describes the HTTP layer.
type ServerConfig struct {
	Port         string `yaml:"port" json:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// StorageConfig selects and configures the FAQ repository.
// CorpusLimit caps how many active records one search scores.
type StorageConfig struct {
	Driver      string `yaml:"driver" json:"driver"`
	DataDir     string `yaml:"data_dir" json:"data_dir"`
	SQLitePath  string `yaml:"sqlite_path" json:"sqlite_path"`
	CorpusLimit int    `yaml:"corpus_limit" json:"corpus_limit"`
}

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server" json:"server"`
	Storage StorageConfig  `yaml:"storage" json:"storage"`
	Scorer  ScorerSettings `yaml:"scorer" json:"scorer"`
	Lexicon Lexicon        `yaml:"lexicon" json:"lexicon"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			MaxBodyBytes: 1 << 20,
		},
		Storage: StorageConfig{
			Driver:      DriverMemory,
			DataDir:     "./faq_data",
			SQLitePath:  "./faq_data/faqs.db",
			CorpusLimit: 100,
		},
		Scorer:  DefaultScorerSettings(),
		Lexicon: DefaultLexicon(),
	}
}

// Load builds a Config from defaults, an optional YAML file and environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if problems := cfg.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("FAQ_PORT", c.Server.Port)
	c.Storage.Driver = getEnv("FAQ_STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DataDir = getEnv("FAQ_DATA_DIR", c.Storage.DataDir)
	c.Storage.SQLitePath = getEnv("FAQ_SQLITE_PATH", c.Storage.SQLitePath)
	c.Storage.CorpusLimit = getInt("FAQ_CORPUS_LIMIT", c.Storage.CorpusLimit)
}

// Validate returns a description of every invalid setting.
func (c *Config) Validate() []string {
	var problems []string

	if strings.TrimSpace(c.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be positive")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			problems = append(problems, "storage.sqlite_path is required for the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver '%s' (must be '%s' or '%s')", c.Storage.Driver, DriverMemory, DriverSQLite))
	}
	if c.Storage.CorpusLimit <= 0 {
		problems = append(problems, "storage.corpus_limit must be positive")
	}

	for _, p := range c.Scorer.Validate() {
		problems = append(problems, "scorer: "+p)
	}
	for _, p := range c.Lexicon.Validate() {
		problems = append(problems, "lexicon: "+p)
	}
	return problems
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}
