package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-glossary/internal/config"
)

// envConfig holds configuration from environment variables.
// Lets cron jobs and CI pass the API token without writing it to a file.
type envConfig struct {
	ConfigPath   string // GLOSSARYTIPS_CONFIG: config file name or path
	URL          string // GLOSSARYTIPS_URL: Canvas base URL
	Token        string // GLOSSARYTIPS_TOKEN: API access token
	CourseID     string // GLOSSARYTIPS_COURSE_ID: course id
	GlossaryPage string // GLOSSARYTIPS_GLOSSARY_PAGE: glossary page title
	LogLevel     string // GLOSSARYTIPS_LOG_LEVEL: debug, info, warn, error
}

// knownEnvVars lists valid GLOSSARYTIPS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"GLOSSARYTIPS_CONFIG":        true,
	"GLOSSARYTIPS_URL":           true,
	"GLOSSARYTIPS_TOKEN":         true,
	"GLOSSARYTIPS_COURSE_ID":     true,
	"GLOSSARYTIPS_GLOSSARY_PAGE": true,
	"GLOSSARYTIPS_LOG_LEVEL":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath:   getenv("GLOSSARYTIPS_CONFIG"),
		URL:          getenv("GLOSSARYTIPS_URL"),
		Token:        getenv("GLOSSARYTIPS_TOKEN"),
		CourseID:     getenv("GLOSSARYTIPS_COURSE_ID"),
		GlossaryPage: getenv("GLOSSARYTIPS_GLOSSARY_PAGE"),
		LogLevel:     getenv("GLOSSARYTIPS_LOG_LEVEL"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized GLOSSARYTIPS_* variables.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "GLOSSARYTIPS_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; flags are applied afterwards.
// This ensures: CLI flags > env vars > config file > defaults
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.URL != "" {
		cfg.Canvas.URL = env.URL
	}
	if env.Token != "" {
		cfg.Canvas.Token = env.Token
	}
	if env.CourseID != "" {
		cfg.Course.ID = config.ID(env.CourseID)
	}
	if env.GlossaryPage != "" {
		cfg.Course.GlossaryPage = env.GlossaryPage
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
}

// mergeFlags applies explicitly set flags to config (CLI wins).
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.course.url != "" {
		cfg.Canvas.URL = flags.course.url
	}
	if flags.course.courseID != "" {
		cfg.Course.ID = config.ID(flags.course.courseID)
	}
	if flags.course.glossaryPage != "" {
		cfg.Course.GlossaryPage = flags.course.glossaryPage
	}
	if flags.glossary.file != "" {
		cfg.Glossary.File = flags.glossary.file
	}
	if flags.glossary.order != "" {
		cfg.Glossary.Order = flags.glossary.order
	}
	if flags.common.verbose {
		cfg.Log.Level = "debug"
	} else if flags.common.quiet {
		cfg.Log.Level = "error"
	}
}
