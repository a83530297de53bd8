package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all ccline configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	TTL        TTLConfig        `toml:"ttl"`
	Pricing    PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// ContextWindow is the token capacity used for the context percentage
	// when the input snapshot does not supply one.
	ContextWindow int64 `toml:"context_window"`
	// CacheDir overrides the session cache location (default: temp dir).
	CacheDir string `toml:"cache_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TTLConfig holds freshness windows, in seconds, for the external lookups.
type TTLConfig struct {
	GitSecs      int64 `toml:"git_secs"`
	PRURLSecs    int64 `toml:"pr_url_secs"`
	PRChecksSecs int64 `toml:"pr_checks_secs"`
}

// PricingOverrides allows user-defined pricing for specific models.
type PricingOverrides struct {
	Overrides map[string]ModelPricingOverride `toml:"overrides,omitempty"`
}

// ModelPricingOverride holds per-model pricing overrides.
type ModelPricingOverride struct {
	InputPerMTok      *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok     *float64 `toml:"output_per_mtok,omitempty"`
	CacheWritePerMTok *float64 `toml:"cache_write_per_mtok,omitempty"`
	CacheReadPerMTok  *float64 `toml:"cache_read_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			ContextWindow: 160_000,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TTL: TTLConfig{
			GitSecs:      5,
			PRURLSecs:    60,
			PRChecksSecs: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ccline")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ccline")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A malformed file also falls back to defaults: the status line must
// render with or without user configuration.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.General.ContextWindow <= 0 {
		cfg.General.ContextWindow = 160_000
	}
	if cfg.TTL.GitSecs <= 0 {
		cfg.TTL.GitSecs = 5
	}
	if cfg.TTL.PRURLSecs <= 0 {
		cfg.TTL.PRURLSecs = 60
	}
	if cfg.TTL.PRChecksSecs <= 0 {
		cfg.TTL.PRChecksSecs = 30
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
