package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Per-kind listing settings are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Listings ListingsConfig          `yaml:"listings"`
	Kinds    map[string]KindSettings `yaml:"kinds"`
}

// ListingsConfig holds global pagination defaults.
type ListingsConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// KindSettings overrides listing and notification behaviour for one entity kind,
// keyed by its route slug (e.g. "podcasters").
type KindSettings struct {
	DefaultLimit       int   `yaml:"default_limit"`
	PublicLimit        int   `yaml:"public_limit"`
	NotifyModerators   *bool `yaml:"notify_moderators"`
	DisableEmailNotice bool  `yaml:"disable_email_notice"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig decodes raw YAML and applies defaults.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Listings.MaxLimit <= 0 {
		cfg.Listings.MaxLimit = 100
	}
	if cfg.Listings.DefaultLimit <= 0 {
		cfg.Listings.DefaultLimit = 10
	}

	return &cfg, nil
}

// Kind returns the settings for a kind slug. Missing entries yield zero settings.
func (c *YAMLConfig) Kind(slug string) KindSettings {
	if c == nil || c.Kinds == nil {
		return KindSettings{}
	}
	return c.Kinds[slug]
}

// Apply copies global listing limits from YAML onto the env config. Env values
// that differ from the built-in defaults win.
func (c *YAMLConfig) Apply(cfg *Config) {
	if c == nil {
		return
	}
	if os.Getenv("DEFAULT_PAGE_SIZE") == "" {
		cfg.DefaultPageSize = c.Listings.DefaultLimit
	}
	if os.Getenv("MAX_PAGE_SIZE") == "" {
		cfg.MaxPageSize = c.Listings.MaxLimit
	}
}
