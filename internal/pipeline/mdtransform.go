package pipeline

import (
	"regexp"
	"strings"
)

var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// byteOrderMark is written by some editors at the start of UTF-8 files.
const byteOrderMark = "\uFEFF"

// preprocessMarkdown prepares a glossary file for goldmark. Files saved on
// Windows or exported from word processors otherwise split definition lists.
func preprocessMarkdown(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
