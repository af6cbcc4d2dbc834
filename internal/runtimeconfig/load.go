package runtimeconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, for example
// SITECMS_STORAGE_DSN or SITECMS_TRANSLATION_DEEPL_API_KEY.
const EnvPrefix = "SITECMS_"

// Load layers an optional YAML file and the environment over
// DefaultConfig, then validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("site config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("site config: decode %s: %w", path, err)
		}
	}

	if err := ApplyEnv(&cfg, nil); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. When environ is nil the
// process environment is used.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("site config: environment: %w", err)
	}
	return nil
}
