package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	glossary "github.com/alnah/go-glossary"
	"github.com/alnah/go-glossary/internal/config"
	"github.com/alnah/go-glossary/internal/course"
	"github.com/alnah/go-glossary/internal/fileutil"
	"github.com/alnah/go-glossary/internal/yamlutil"
)

// Sentinel errors for glossary loading.
var (
	ErrReadGlossary              = errors.New("failed to read glossary file")
	ErrUnsupportedGlossaryFormat = errors.New("unsupported glossary file format")
)

// glossaryFetcher finds the glossary on the course itself.
type glossaryFetcher interface {
	FetchGlossary(ctx context.Context) (*glossary.Glossary, error)
}

// Compile-time interface implementation check.
var _ glossaryFetcher = (*course.Runner)(nil)

// loadGlossary returns the glossary for a run.
// Inline terms win over a glossary file, which wins over the course page.
func loadGlossary(ctx context.Context, cfg *config.Config, fetcher glossaryFetcher) (*glossary.Glossary, error) {
	switch {
	case len(cfg.Glossary.Terms) > 0:
		return glossary.New(cfg.Glossary.Terms...), nil
	case cfg.Glossary.File != "":
		return readGlossaryFile(ctx, cfg.Glossary.File)
	default:
		return fetcher.FetchGlossary(ctx)
	}
}

// readGlossaryFile parses a local glossary by extension:
//   - .md, .markdown: definition list ("Term" line, then ": Definition")
//   - .html, .htm: first <dl> in the document
//   - .yaml, .yml: list of {term, definition}
func readGlossaryFile(ctx context.Context, path string) (*glossary.Glossary, error) {
	switch fileutil.Ext(path) {
	case "md", "markdown":
		data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadGlossary, err)
		}
		return glossary.ParseMarkdownGlossary(ctx, string(data))

	case "html", "htm":
		data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadGlossary, err)
		}
		return glossary.ParseGlossary(string(data))

	case "yaml", "yml":
		var entries []glossary.Entry
		if err := yamlutil.DecodeFile(path, &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadGlossary, err)
		}
		return glossary.New(entries...), nil

	default:
		return nil, fmt.Errorf("%w: %s (use .md, .html or .yaml)", ErrUnsupportedGlossaryFormat, path)
	}
}
