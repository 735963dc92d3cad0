package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed page body that can be mutated and rendered back.
// Canvas page bodies are fragments; full documents are accepted too.
type Document struct {
	root       *html.Node
	isFragment bool
}

// skippedElements hold text that is never considered for annotation.
var skippedElements = map[atom.Atom]bool{
	atom.Head:     true,
	atom.Title:    true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Textarea: true,
	atom.Template: true,
}

// ParseDocument parses HTML content, handling both full documents and fragments.
func ParseDocument(content string) (*Document, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	// Full document: starts with <!DOCTYPE or <html
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		root, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		return &Document{root: root}, nil
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	// Wrap nodes in a container for uniform traversal
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	return &Document{root: container, isFragment: true}, nil
}

// Root returns the top node of the parsed tree.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render serializes the document back to a string.
// Fragments render only their children, without an <html><body> wrapper.
func (d *Document) Render() (string, error) {
	var buf strings.Builder

	if d.isFragment {
		for c := d.root.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
		return buf.String(), nil
	}

	if err := html.Render(&buf, d.root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// TextNodes returns the text nodes under n in document order, skipping the
// contents of script, style and other non-prose elements.
func TextNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			nodes = append(nodes, n)
			return
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// FindElement returns the first element with the given atom under n,
// searching depth-first, or nil.
func FindElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// ChildElements returns descendants of n matching a, in document order.
// Elements matching stop are not descended into.
func ChildElements(n *html.Node, a, stop atom.Atom) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom == a {
				found = append(found, c)
			}
			if c.DataAtom == stop {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return found
}

// TextContent returns the concatenated text of n and its descendants.
// Comments are ignored.
func TextContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

// NormalizeSpace collapses runs of whitespace into single spaces and trims
// both ends, so extracted text does not depend on source formatting.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripComments removes every comment node under n.
func StripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			StripComments(c)
		}
		c = next
	}
}
