// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// envForField maps required config fields to the environment variable that
// can supply them.
var envForField = map[string]string{
	"canvas.url":          "GLOSSARYTIPS_URL",
	"canvas.token":        "GLOSSARYTIPS_TOKEN",
	"course.id":           "GLOSSARYTIPS_COURSE_ID",
	"course.glossaryPage": "GLOSSARYTIPS_GLOSSARY_PAGE",
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-glossary") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingField returns a hint naming the flag or variable that sets field.
func ForMissingField(message string) string {
	for field, env := range envForField {
		if strings.Contains(message, field) {
			return format("set " + field + " in the config file or " + env)
		}
	}
	return ""
}

// ForUnauthorized returns hints for rejected API credentials.
func ForUnauthorized() string {
	return formatHints([]string{
		"check canvas.token (or GLOSSARYTIPS_TOKEN) is a valid access token",
		"the token's user must be allowed to edit pages in the course",
	})
}

// ForGlossaryPageNotFound returns hints for a missing glossary page.
func ForGlossaryPageNotFound() string {
	return format("page titles are matched case-insensitively; check course.glossaryPage or use --glossary-file")
}

// ForPartialRun returns a hint for runs that finished with page failures.
func ForPartialRun() string {
	return format("rerun to retry failed pages; pages already updated are left unchanged")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
