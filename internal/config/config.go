// Package config loads shady-css settings from .shady-css.yaml or
// shady-css.json files and from LSP initialization options.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/shadycss/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatCSS  = "css"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FileNames are the config file names Discover looks for, in order.
var FileNames = []string{".shady-css.yaml", ".shady-css.yml", "shady-css.json"}

// Config holds settings shared by the CLI and the language server
type Config struct {
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// Format is the CLI output format: css, yaml or json
	Format string `yaml:"format" json:"format"`

	// ApplyMixins desugars @apply when formatting
	ApplyMixins bool `yaml:"applyMixins" json:"applyMixins"`

	// Include restricts processed files to those matching these globs.
	// Empty means every file.
	Include []string `yaml:"include" json:"include"`

	// Exclude skips files matching these globs
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		LogLevel: "info",
		Format:   FormatCSS,
		Exclude:  []string{"**/node_modules/**"},
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Format {
	case FormatCSS, FormatYAML, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	for _, pattern := range append(append([]string{}, c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	return nil
}

// Level returns the parsed log level, or info when it is invalid.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

// Load reads a config file over the defaults. YAML files are decoded
// directly; JSON files may contain comments and trailing commas.
func Load(path string) (Config, error) {
	return Default().Overlay(path)
}

// Overlay reads a config file over c. Keys absent from the file keep the
// values in c.
func (c Config) Overlay(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied config path
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	c.Include = slices.Clone(c.Include)
	c.Exclude = slices.Clone(c.Exclude)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
		if err := json.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Discover returns the first config file in dir named in FileNames.
func Discover(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		} else if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Failed to stat %s: %v", path, err)
		}
	}
	return "", false
}

// LoadDir loads the config file discovered in dir, or the defaults when there
// is none. It also returns the path loaded, if any.
func LoadDir(dir string) (Config, string, error) {
	return Default().OverlayDir(dir)
}

// OverlayDir reads the config file discovered in dir over c, returning c
// unchanged when there is none. It also returns the path loaded, if any.
func (c Config) OverlayDir(dir string) (Config, string, error) {
	path, ok := Discover(dir)
	if !ok {
		return c, "", nil
	}
	cfg, err := c.Overlay(path)
	return cfg, path, err
}

// FromSettings decodes settings sent by an LSP client, such as
// initializationOptions, over the defaults.
func FromSettings(settings any) (Config, error) {
	return Default().Apply(settings)
}

// Apply decodes client settings over c. Keys absent from settings keep the
// values in c.
func (c Config) Apply(settings any) (Config, error) {
	if settings == nil {
		return c, nil
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return Config{}, fmt.Errorf("failed to encode settings: %w", err)
	}
	// json.Unmarshal reuses slice backing arrays
	c.Include = slices.Clone(c.Include)
	c.Exclude = slices.Clone(c.Exclude)
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Selects reports whether path passes the include and exclude globs.
func (c Config) Selects(path string) bool {
	path = filepath.ToSlash(path)
	if len(c.Include) > 0 && !matchAny(c.Include, path) {
		return false
	}
	return !matchAny(c.Exclude, path)
}

// SelectsIn is Selects for a path under root, matched relative to root so
// that workspace-relative globs apply. Paths outside root, or an empty root,
// are matched as given.
func (c Config) SelectsIn(root, path string) bool {
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			path = rel
		}
	}
	return c.Selects(path)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		// doublestar.Match expects forward slashes
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
