// Package config holds the settings of the smallos command-line tool.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the printer.
const (
	FormatSexpr = "sexpr"
	FormatYAML  = "yaml"
	FormatSpew  = "spew"
)

// Config holds the complete CLI configuration
type Config struct {
	Format    string `toml:"format" yaml:"format"`       // AST output format
	Trim      bool   `toml:"trim" yaml:"trim"`           // cut the program after its first answer
	DeepTrim  bool   `toml:"deep_trim" yaml:"deep_trim"` // also trim methods and blocks
	Verbosity int    `toml:"verbosity" yaml:"verbosity"` // 0 (crit) .. 5 (trace)
	Color     bool   `toml:"color" yaml:"color"`
	Prompt    string `toml:"prompt" yaml:"prompt"` // REPL prompt
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:    FormatSexpr,
		Verbosity: 3,
		Color:     true,
		Prompt:    "smallos> ",
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over the defaults.
// Keys missing from the file keep their default values. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	// Expand environment variables in path
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.decode(content, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(content []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		_, err := toml.Decode(string(content), c)
		return err
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, c)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// Validate checks that every setting is within range.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatSexpr, FormatYAML, FormatSpew:
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", c.Format, FormatSexpr, FormatYAML, FormatSpew)
	}
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return fmt.Errorf("verbosity %d out of range 0-5", c.Verbosity)
	}
	return nil
}

// Encode writes the configuration to w as TOML or YAML, selected by a file
// extension such as ".toml".
func (c *Config) Encode(w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.NewEncoder(w).Encode(c)
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}
