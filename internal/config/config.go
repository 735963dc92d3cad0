package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	glossary "github.com/alnah/go-glossary"
	"github.com/alnah/go-glossary/internal/canvas"
	"github.com/alnah/go-glossary/internal/fileutil"
	"github.com/alnah/go-glossary/internal/logging"
	"github.com/alnah/go-glossary/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched for named configs.
const appDir = "go-glossary"

// Config holds everything a glossary run needs. It is built once from file,
// environment and flags, validated, then passed explicitly to the client
// and runner.
type Config struct {
	Canvas   CanvasConfig   `yaml:"canvas"`
	Course   CourseConfig   `yaml:"course"`
	Glossary GlossaryConfig `yaml:"glossary"`
	Log      LogConfig      `yaml:"log"`
}

// CanvasConfig defines how to reach the Canvas API.
type CanvasConfig struct {
	URL       string `yaml:"url"`       // Base URL, e.g. https://canvas.example.edu
	Token     string `yaml:"token"`     // API access token
	RateLimit int    `yaml:"rateLimit"` // Requests per second (0 = unlimited)
	Timeout   string `yaml:"timeout"`   // Per-request timeout, Go duration (default: 30s)
}

// CourseConfig identifies the course and its glossary page.
type CourseConfig struct {
	ID           ID     `yaml:"id"`
	GlossaryPage string `yaml:"glossaryPage"` // Page title, matched case-insensitively
}

// GlossaryConfig defines where terms come from and how they are applied.
// Terms take precedence over File, which takes precedence over the course page.
type GlossaryConfig struct {
	File  string           `yaml:"file"`  // .md, .html or .yaml glossary file
	Order string           `yaml:"order"` // "authored" or "longest-first" (default: "authored")
	Terms []glossary.Entry `yaml:"terms"`
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error" (default: "info")
	Format string `yaml:"format"` // "console" or "json" (default: "console")
}

// ID is a course identifier. YAML may spell it as a number or a string.
type ID string

// UnmarshalYAML accepts scalars of any kind.
func (id *ID) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	if v == nil {
		*id = ""
		return nil
	}
	*id = ID(strings.TrimSpace(fmt.Sprint(v)))
	return nil
}

// String returns the identifier as used in API paths.
func (id ID) String() string {
	return string(id)
}

// DefaultConfig returns a configuration with defaults for every optional field.
func DefaultConfig() *Config {
	return &Config{
		Canvas: CanvasConfig{
			RateLimit: canvas.DefaultRateLimit,
			Timeout:   canvas.DefaultTimeout.String(),
		},
		Glossary: GlossaryConfig{Order: glossary.OrderAuthored.String()},
		Log:      LogConfig{Level: logging.LevelInfo, Format: "console"},
	}
}

// HasLocalGlossary reports whether terms come from the config or a file
// rather than from the course glossary page.
func (c *Config) HasLocalGlossary() bool {
	return len(c.Glossary.Terms) > 0 || c.Glossary.File != ""
}

// Validate checks required fields and value ranges. It must pass before any
// network call is made. Errors name the offending field.
func (c *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"canvas.url", c.Canvas.URL},
		{"canvas.token", c.Canvas.Token},
		{"course.id", c.Course.ID.String()},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.field)
		}
	}
	if !c.HasLocalGlossary() && strings.TrimSpace(c.Course.GlossaryPage) == "" {
		return fmt.Errorf("%w: course.glossaryPage (or glossary.file / glossary.terms)", ErrMissingField)
	}

	u, err := url.Parse(c.Canvas.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: canvas.url: %q is not an http(s) URL", ErrInvalidValue, c.Canvas.URL)
	}
	if c.Canvas.RateLimit < 0 {
		return fmt.Errorf("%w: canvas.rateLimit: must be >= 0, got %d", ErrInvalidValue, c.Canvas.RateLimit)
	}
	if _, err := c.Canvas.TimeoutDuration(); err != nil {
		return err
	}

	if _, err := glossary.ParseTermOrder(c.Glossary.Order); err != nil {
		return fmt.Errorf("%w: glossary.order: %v", ErrInvalidValue, err)
	}
	for i, t := range c.Glossary.Terms {
		if strings.TrimSpace(t.Term) == "" {
			return fmt.Errorf("%w: glossary.terms[%d].term", ErrMissingField, i)
		}
	}

	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: log.format: %q (must be console or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value selects the client default.
func (c CanvasConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return canvas.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: canvas.timeout: %q is not a positive duration", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
//
// Fields absent from the file keep their DefaultConfig values. The result is
// not validated: environment and flags may still fill required fields.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-glossary/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
