package glossary

import (
	"context"
	"fmt"

	"golang.org/x/net/html/atom"

	"github.com/alnah/go-glossary/internal/pipeline"
)

// ParseGlossary reads the first description list in an HTML fragment and
// returns its terms and definitions.
//
// The Nth <dt> is paired with the Nth <dd>. When the counts differ the extra
// elements of the longer sequence are dropped. Comments are ignored and all
// text is whitespace-normalized, so term and definition are plain trimmed
// text with inner markup stripped. A document without a <dl> yields an
// empty glossary.
func ParseGlossary(body string) (*Glossary, error) {
	doc, err := pipeline.ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}
	pipeline.StripComments(doc.Root())

	g := New()
	dl := pipeline.FindElement(doc.Root(), atom.Dl)
	if dl == nil {
		return g, nil
	}

	terms := pipeline.ChildElements(dl, atom.Dt, atom.Dl)
	defs := pipeline.ChildElements(dl, atom.Dd, atom.Dl)
	n := min(len(terms), len(defs))

	for i := range n {
		term := pipeline.NormalizeSpace(pipeline.TextContent(terms[i]))
		def := pipeline.NormalizeSpace(pipeline.TextContent(defs[i]))
		g.Set(term, def)
	}
	return g, nil
}

// ParseMarkdownGlossary converts a Markdown document to HTML and parses its
// first definition list:
//
//	Python
//	: A high-level programming language.
func ParseMarkdownGlossary(ctx context.Context, markdown string) (*Glossary, error) {
	out, err := pipeline.NewMarkdownConverter().ToHTML(ctx, markdown)
	if err != nil {
		return nil, err
	}
	return ParseGlossary(out)
}
