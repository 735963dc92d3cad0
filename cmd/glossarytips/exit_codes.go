package main

import (
	"errors"
	"os"

	glossary "github.com/alnah/go-glossary"
	"github.com/alnah/go-glossary/internal/canvas"
	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
	"github.com/alnah/go-glossary/internal/hints"
)

// Exit codes for the glossarytips CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Run completed, every page processed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Glossary file or metrics file not readable/writable
	ExitRemote  = 4 // Canvas API rejected or failed the run
	ExitPartial = 5 // Run completed but some pages failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Checked first: page failures wrap remote errors
	if errors.Is(err, ErrPartialRun) {
		return ExitPartial
	}

	// Remote API errors (exit 4)
	var apiErr *canvas.APIError
	if errors.Is(err, course.ErrListPages) ||
		errors.Is(err, canvas.ErrUnauthorized) ||
		errors.As(err, &apiErr) {
		return ExitRemote
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadGlossary) ||
		errors.Is(err, ErrWriteMetrics) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrUnsupportedGlossaryFormat) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrMissingField) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, glossary.ErrInvalidTermOrder) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrMissingField):
		return hints.ForMissingField(err.Error())
	case errors.Is(err, config.ErrConfigNotFound) && configName != "":
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, canvas.ErrUnauthorized):
		return hints.ForUnauthorized()
	case errors.Is(err, course.ErrGlossaryPageNotFound):
		return hints.ForGlossaryPageNotFound()
	case errors.Is(err, ErrPartialRun):
		return hints.ForPartialRun()
	}
	return ""
}
