// Package fileutil provides file and path utility functions.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "course" -> false (name)
//   - "./course.yaml" -> true (relative path)
//   - "/etc/glossary/course.yaml" -> true (absolute)
//   - "C:\glossary\course.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Ext returns the lowercased extension of path, without the dot.
//
// Examples:
//   - "terms.MD" -> "md"
//   - "glossary.yaml" -> "yaml"
//   - "README" -> ""
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
