// Package pipeline holds the HTML plumbing behind glossary parsing and
// tooltip annotation.
//
// It wraps golang.org/x/net/html for:
//   - Parsing page bodies as fragments or full documents
//   - Walking prose text nodes (script, style and head content excluded)
//   - Building and detecting tooltip annotation elements
//   - Splitting a text node around matched ranges in place
//   - Rendering the mutated tree back to a string
//
// Markdown glossary files are converted to HTML here with goldmark, so the
// same description-list parser serves Canvas pages and local files.
package pipeline
