package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glossary "github.com/alnah/go-glossary"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Canvas.URL = "https://canvas.example.edu"
	cfg.Canvas.Token = "secret"
	cfg.Course.ID = "42"
	cfg.Course.GlossaryPage = "Glossary"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Canvas.RateLimit != 5 {
		t.Errorf("Canvas.RateLimit = %d, want 5", cfg.Canvas.RateLimit)
	}
	if cfg.Canvas.Timeout != "30s" {
		t.Errorf("Canvas.Timeout = %q, want 30s", cfg.Canvas.Timeout)
	}
	if cfg.Glossary.Order != "authored" {
		t.Errorf("Glossary.Order = %q, want authored", cfg.Glossary.Order)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.HasLocalGlossary() {
		t.Error("HasLocalGlossary() = true, want false")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		field   string
	}{
		{"valid", func(*Config) {}, nil, ""},
		{"missing url", func(c *Config) { c.Canvas.URL = "" }, ErrMissingField, "canvas.url"},
		{"missing token", func(c *Config) { c.Canvas.Token = " " }, ErrMissingField, "canvas.token"},
		{"missing course id", func(c *Config) { c.Course.ID = "" }, ErrMissingField, "course.id"},
		{"missing glossary source", func(c *Config) { c.Course.GlossaryPage = "" }, ErrMissingField, "course.glossaryPage"},
		{"glossary file replaces page", func(c *Config) {
			c.Course.GlossaryPage = ""
			c.Glossary.File = "terms.md"
		}, nil, ""},
		{"non-http url", func(c *Config) { c.Canvas.URL = "ftp://canvas" }, ErrInvalidValue, "canvas.url"},
		{"url without host", func(c *Config) { c.Canvas.URL = "https://" }, ErrInvalidValue, "canvas.url"},
		{"negative rate limit", func(c *Config) { c.Canvas.RateLimit = -1 }, ErrInvalidValue, "canvas.rateLimit"},
		{"zero rate limit allowed", func(c *Config) { c.Canvas.RateLimit = 0 }, nil, ""},
		{"bad timeout", func(c *Config) { c.Canvas.Timeout = "soon" }, ErrInvalidValue, "canvas.timeout"},
		{"negative timeout", func(c *Config) { c.Canvas.Timeout = "-1s" }, ErrInvalidValue, "canvas.timeout"},
		{"bad order", func(c *Config) { c.Glossary.Order = "random" }, ErrInvalidValue, "glossary.order"},
		{"empty inline term", func(c *Config) {
			c.Glossary.Terms = []glossary.Entry{{Term: " ", Definition: "x"}}
		}, ErrMissingField, "glossary.terms[0].term"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, ErrInvalidValue, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidValue, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should name %s", err, tt.field)
			}
		})
	}
}

func TestCanvasConfig_TimeoutDuration(t *testing.T) {
	t.Parallel()

	d, err := CanvasConfig{}.TimeoutDuration()
	if err != nil || d != 30*time.Second {
		t.Errorf("empty timeout = %v, %v, want 30s", d, err)
	}
	d, err = CanvasConfig{Timeout: "1m30s"}.TimeoutDuration()
	if err != nil || d != 90*time.Second {
		t.Errorf("1m30s = %v, %v", d, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config over defaults", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		configPath := filepath.Join(dir, "course.yaml")
		content := `canvas:
  url: https://canvas.example.edu
  token: secret
course:
  id: 1234
  glossaryPage: Course Glossary
glossary:
  order: longest-first
  terms:
    - term: API
      definition: Application Programming Interface
log:
  level: debug
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Course.ID != "1234" {
			t.Errorf("Course.ID = %q, want 1234", cfg.Course.ID)
		}
		if cfg.Course.GlossaryPage != "Course Glossary" {
			t.Errorf("Course.GlossaryPage = %q", cfg.Course.GlossaryPage)
		}
		if len(cfg.Glossary.Terms) != 1 || cfg.Glossary.Terms[0].Term != "API" {
			t.Errorf("Glossary.Terms = %+v", cfg.Glossary.Terms)
		}
		if cfg.Canvas.RateLimit != 5 || cfg.Canvas.Timeout != "30s" {
			t.Errorf("defaults lost: %+v", cfg.Canvas)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
			t.Errorf("Log = %+v", cfg.Log)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("string course id", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "course.yaml")
		if err := os.WriteFile(configPath, []byte("course:\n  id: \"sis_course_id:ABC\"\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Course.ID != "sis_course_id:ABC" {
			t.Errorf("Course.ID = %q", cfg.Course.ID)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-name-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name-xyz.yaml") {
			t.Errorf("error should list tried paths: %v", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		if err := os.WriteFile(configPath, []byte("canvas: [unclosed"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "unknown.yaml")
		if err := os.WriteFile(configPath, []byte("canvas:\n  uri: https://x\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("course")
	if len(paths) < 2 || paths[0] != "course.yaml" || paths[1] != "course.yml" {
		t.Fatalf("SearchPaths() = %v", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, "go-glossary") {
			t.Errorf("user path %q should be under go-glossary", p)
		}
	}
}
