package pipeline

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attribute names carried by a tooltip annotation.
const (
	TooltipAttr = "title"
	StyleAttr   = "style"
)

// NewAnnotation builds a <span> element wrapping text, with the tooltip and
// style attributes set in that order.
func NewAnnotation(text, tooltip, style string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{
			{Key: TooltipAttr, Val: tooltip},
			{Key: StyleAttr, Val: style},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return span
}

// IsAnnotation reports whether n is a tooltip annotation: a span carrying a
// title attribute.
func IsAnnotation(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Span {
		return false
	}
	_, ok := Attr(n, TooltipAttr)
	return ok
}

// Attr returns the value of the named attribute on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr replaces the value of the named attribute in place, or appends it.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// WrapRanges splits text node n around the given byte ranges and replaces
// each range with the node returned by wrap. Ranges must be sorted and must
// not overlap. Surrounding text stays as sibling text nodes.
func WrapRanges(n *html.Node, ranges [][2]int, wrap func(string) *html.Node) {
	parent := n.Parent
	if parent == nil || len(ranges) == 0 {
		return
	}

	text := n.Data
	cursor := 0
	for _, r := range ranges {
		if r[0] > cursor {
			parent.InsertBefore(&html.Node{Type: html.TextNode, Data: text[cursor:r[0]]}, n)
		}
		parent.InsertBefore(wrap(text[r[0]:r[1]]), n)
		cursor = r[1]
	}

	// n keeps the trailing text so its position is preserved
	if cursor < len(text) {
		n.Data = text[cursor:]
		return
	}
	parent.RemoveChild(n)
}
