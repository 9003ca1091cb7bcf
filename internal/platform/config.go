package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-directory configuration file written by `scribe init`.
const ConfigFileName = "scribe.yaml"

// Config mirrors scribe.yaml. Zero values mean "use the default".
type Config struct {
	Data    string    `yaml:"data,omitempty"`
	Backend string    `yaml:"backend,omitempty"`
	Codec   string    `yaml:"codec,omitempty"`
	Key     string    `yaml:"key,omitempty"`
	Welcome bool      `yaml:"welcome,omitempty"`
	Log     LogConfig `yaml:"log,omitempty"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level      string `yaml:"level,omitempty"` // debug, info, warn, error
	File       string `yaml:"file,omitempty"`  // rotated with lumberjack when set
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// DefaultConfig is what `scribe init` writes.
func DefaultConfig() Config {
	return Config{
		Data:    "data",
		Backend: BackendFS,
		Codec:   "json",
		Welcome: true,
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads a config file. A missing file yields an empty Config.
// A relative Data path is resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	switch cfg.Backend {
	case "", BackendFS, BackendSQLite, BackendMemory:
	default:
		return cfg, fmt.Errorf("invalid config %s: backend %q", path, cfg.Backend)
	}

	if cfg.Data != "" && !filepath.IsAbs(cfg.Data) {
		cfg.Data = filepath.Join(filepath.Dir(path), cfg.Data)
	}
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(filepath.Dir(path), cfg.Log.File)
	}
	return cfg, nil
}

// WriteConfig writes cfg to path, refusing to overwrite an existing file.
func WriteConfig(path string, cfg Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Options translates the non-empty fields into functional options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Backend != "" {
		opts = append(opts, WithBackend(c.Backend))
	}
	if c.Codec != "" {
		opts = append(opts, WithCodec(c.Codec))
	}
	if c.Key != "" {
		opts = append(opts, WithKey(c.Key))
	}
	if c.Welcome {
		opts = append(opts, WithWelcomeNotes(true))
	}
	return opts
}
