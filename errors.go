package glossary

import (
	"errors"

	"github.com/alnah/go-glossary/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilGlossary      = errors.New("glossary cannot be nil")
	ErrMalformedHTML    = errors.New("malformed HTML")
	ErrInvalidTermOrder = errors.New("invalid term order")

	// ErrMarkdownConversion is returned when a Markdown glossary cannot be
	// converted to HTML.
	ErrMarkdownConversion = pipeline.ErrMarkdownConversion
)
