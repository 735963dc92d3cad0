// Package glossary annotates glossary terms in HTML pages with hover tooltips.
//
// # Quick Start
//
// Parse a glossary from a page holding a description list, then enrich
// another page with it:
//
//	g, err := glossary.ParseGlossary(`<dl><dt>Python</dt><dd>A programming language.</dd></dl>`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	body, err := glossary.Enrich(`<p>Python is fun.</p>`, g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// <p><span title="A programming language." style="border-bottom: 1px dotted #000">Python</span> is fun.</p>
//
// # Matching Rules
//
// Terms match case-insensitively and only as whole words: "cat" does not
// match inside "category". The annotation keeps the casing found in the page.
// Text inside script, style and head elements, and inside attribute values,
// is never matched. A term does not match across element boundaries.
//
// An occurrence whose parent is already an annotation (a span with a title)
// is not wrapped again; its tooltip is replaced when it differs from the
// definition. When the annotation's text is itself a glossary term, only that
// term refreshes it. When several terms match inside one annotation, the
// last one processed sets the tooltip.
//
// # Term Order
//
// Terms are processed one after the other; when two terms compete for the
// same text, the first one processed wins. By default that is glossary order.
// Use WithTermOrder(OrderLongestFirst) to let longer phrases win:
//
//	e := glossary.NewEnricher(glossary.WithTermOrder(glossary.OrderLongestFirst))
//	res, err := e.EnrichDocument(body, g)
//
// # Stable Output
//
// Enrich returns its input unchanged, byte for byte, when no annotation was
// added or refreshed, and enriching an enriched page again is a no-op. A
// caller can compare old and new bodies with == to decide whether to save.
//
// A page that does change is re-serialized as a whole, so markup elsewhere
// is normalized without changing its meaning: &nbsp; becomes a literal
// no-break space, an apostrophe becomes &#39; and <br> becomes <br/>.
package glossary
