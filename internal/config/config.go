package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the diffconv.yaml configuration.
//
//	module_path:
//	  - ./src
//	source_marker: modeling_
//	rename:
//	  from: llama
//	  to: gemma
type Config struct {
	// ModulePath lists the roots searched for external modules, in order.
	// Relative entries are resolved against the config file's directory.
	ModulePath []string `yaml:"module_path,omitempty"`

	// SourceMarker is the substring a dotted import path must contain to be
	// treated as an external model source (e.g. "modeling_").
	SourceMarker string `yaml:"source_marker,omitempty"`

	Rename Rename `yaml:"rename"`

	// RenameDiff also runs the rename pass over the diff document itself.
	RenameDiff bool `yaml:"rename_diff,omitempty"`

	// IndexCacheSize bounds the module index path lookup cache.
	IndexCacheSize int `yaml:"index_cache_size,omitempty"`
}

// Rename is the (old, new) token pair of the case-aware rename pass.
type Rename struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a diffconv.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses diffconv.yaml content from bytes.
// The path argument is used for error messages and to anchor relative
// module_path entries.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}

	configDir := filepath.Dir(path)
	for i, root := range cfg.ModulePath {
		if !filepath.IsAbs(root) {
			cfg.ModulePath[i] = filepath.Join(configDir, root)
		}
	}
	return &cfg, nil
}

// FindConfig searches for a config file starting from dir and walking up
// to parent directories. Returns an empty path and nil error if none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ApplyEnv loads a .env file from the working directory when one exists and
// then applies DIFFCONV_* overrides from the environment.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if raw := strings.TrimSpace(os.Getenv(EnvModulePath)); raw != "" {
		var roots []string
		for _, root := range filepath.SplitList(raw) {
			if root = strings.TrimSpace(root); root != "" {
				roots = append(roots, root)
			}
		}
		c.ModulePath = append(roots, c.ModulePath...)
	}
	if marker := strings.TrimSpace(os.Getenv(EnvSourceMarker)); marker != "" {
		c.SourceMarker = marker
	}
	return nil
}

// Validate checks a configuration assembled from flags and environment.
func (c *Config) Validate() error {
	return c.validate("config")
}

func (c *Config) validate(path string) error {
	if c.SourceMarker == "" {
		return fmt.Errorf("%s: source_marker must not be empty", path)
	}
	if c.Rename.From == "" && c.Rename.To != "" {
		return fmt.Errorf("%s: rename.to is set but rename.from is empty", path)
	}
	if c.IndexCacheSize < 0 {
		return fmt.Errorf("%s: index_cache_size must not be negative", path)
	}
	for i, root := range c.ModulePath {
		if strings.TrimSpace(root) == "" {
			return fmt.Errorf("%s: module_path[%d] is empty", path, i)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.SourceMarker == "" {
		c.SourceMarker = DefaultSourceMarker
	}
	if c.Rename.From == "" && c.Rename.To == "" {
		c.Rename = Rename{From: DefaultOldToken, To: DefaultNewToken}
	}
	if c.IndexCacheSize == 0 {
		c.IndexCacheSize = DefaultIndexCache
	}
}
