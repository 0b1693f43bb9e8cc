// Package config loads the site configuration from defaults, an optional
// YAML file and SITE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. SITE_BASE_PATH.
const EnvPrefix = "SITE_"

// Config is the runtime configuration, corresponding to site.yaml.
type Config struct {
	Port          string `koanf:"port"`
	BasePath      string `koanf:"base_path"`
	ContentDir    string `koanf:"content_dir"`
	ContentOrigin string `koanf:"content_origin"`
	LocalStore    string `koanf:"local_store"`
	Owner         string `koanf:"owner"`
	Debug         bool   `koanf:"debug"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:       "8080",
		ContentDir: "content",
		LocalStore: ".site/localstore.db",
		Owner:      "Amit Rahman",
	}
}

// Load reads configuration from the given YAML file, if it exists, then
// overlays SITE_* environment variables. PORT is honoured when SITE_PORT is
// not set.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if _, ok := os.LookupEnv(EnvPrefix + "PORT"); !ok {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Port = port
		}
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)

	return cfg, nil
}

// NormalizeBasePath turns "personal-website/" into "/personal-website" and
// "/" into "".
func NormalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if strings.ContainsAny(c.BasePath, "?#* ") {
		return fmt.Errorf("invalid base_path %q", c.BasePath)
	}
	if c.ContentOrigin != "" && !strings.HasPrefix(c.ContentOrigin, "http://") && !strings.HasPrefix(c.ContentOrigin, "https://") {
		return fmt.Errorf("content_origin must be an http(s) URL, got %q", c.ContentOrigin)
	}
	if c.LocalStore == "" {
		return fmt.Errorf("local_store is required")
	}
	return nil
}
