// Package config loads keytabctl's optional YAML configuration file,
// following the same load-validate-resolve shape as the teacher
// tools' per-binary config packages.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Officialstjp/STKeytab-sub001/pkg/keytab"
)

// Config holds the settings read from the optional config file. The
// CLI applies LogFormat when --log-format is not given; the other
// fields are decoded and validated but no command reads them, so each
// command's own flag defaults apply.
type Config struct {
	Compatibility        string `yaml:"compatibility"`
	IncludeEtypes        []int  `yaml:"include_etypes"`
	IncludeLegacyRC4     bool   `yaml:"include_legacy_rc4"`
	RestrictACLByDefault bool   `yaml:"restrict_acl_by_default"`
	LogFormat            string `yaml:"log_format"` // "text" or "json"
	LogLevel             string `yaml:"log_level"`  // "debug", "info", "warn", "error"
}

// Default returns the zero-config baseline: MIT compatibility, the
// package's default etype set, text logging at info level.
func Default() Config {
	return Config{
		Compatibility: "MIT",
		LogFormat:     "text",
		LogLevel:      "info",
	}
}

// Load reads and validates a config file at path. A missing file at
// the default location is not an error — callers should check
// DefaultPath's existence with FileExists first and fall back to
// Default().
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	cfg := Default()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field-level invariants that the YAML decoder cannot
// enforce on its own.
func (c Config) Validate() error {
	if _, ok := keytab.ParseCompatibility(c.Compatibility); !ok {
		return fmt.Errorf("config.compatibility %q is not one of MIT, Heimdal, Windows", c.Compatibility)
	}
	for _, e := range c.IncludeEtypes {
		if _, ok := keytab.EtypeByCode(uint16(e)); !ok {
			return fmt.Errorf("config.include_etypes: unsupported etype %d", e)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config.log_format %q must be \"text\" or \"json\"", c.LogFormat)
	}
	return nil
}

// DefaultPath returns the conventional config location,
// "$XDG_CONFIG_HOME/keytabctl/config.yaml" falling back to
// "~/.config/keytabctl/config.yaml".
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "keytabctl", "config.yaml")
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Etypes converts the config's IncludeEtypes to uint16 codes, or
// returns keytab.DefaultEtypes() when none were configured.
func (c Config) Etypes() []uint16 {
	if len(c.IncludeEtypes) == 0 {
		return keytab.DefaultEtypes()
	}
	out := make([]uint16, len(c.IncludeEtypes))
	for i, e := range c.IncludeEtypes {
		out[i] = uint16(e)
	}
	return out
}
