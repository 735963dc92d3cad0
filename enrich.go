package glossary

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/alnah/go-glossary/internal/pipeline"
)

// Annotation defaults.
const (
	// MaxTooltipLength caps the tooltip text, in characters, to bound markup size.
	MaxTooltipLength = 512

	// AnnotationStyle marks annotated terms with a dotted underline.
	AnnotationStyle = "border-bottom: 1px dotted #000"
)

// Result describes the outcome of enriching one document.
type Result struct {
	HTML      string // Enriched document, or the input unchanged
	Added     int    // New annotations inserted
	Refreshed int    // Existing annotations whose tooltip was replaced
}

// Changed reports whether the document was modified.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Refreshed > 0
}

// Enricher annotates glossary terms in HTML documents.
// It holds no per-document state and is safe for concurrent use.
type Enricher struct {
	order      TermOrder
	maxTooltip int
	style      string
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithTermOrder sets the order in which terms are matched.
func WithTermOrder(order TermOrder) EnricherOption {
	return func(e *Enricher) {
		e.order = order
	}
}

// WithMaxTooltipLength overrides the tooltip length cap. Values < 1 are ignored.
func WithMaxTooltipLength(n int) EnricherOption {
	return func(e *Enricher) {
		if n > 0 {
			e.maxTooltip = n
		}
	}
}

// WithAnnotationStyle overrides the inline style set on new annotations.
func WithAnnotationStyle(style string) EnricherOption {
	return func(e *Enricher) {
		e.style = style
	}
}

// NewEnricher creates an Enricher with the given options.
func NewEnricher(opts ...EnricherOption) *Enricher {
	e := &Enricher{
		order:      OrderAuthored,
		maxTooltip: MaxTooltipLength,
		style:      AnnotationStyle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich annotates body with the default Enricher and returns the new body.
func Enrich(body string, g *Glossary) (string, error) {
	res, err := NewEnricher().EnrichDocument(body, g)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// Enrich annotates body and returns the new body.
func (e *Enricher) Enrich(body string, g *Glossary) (string, error) {
	res, err := e.EnrichDocument(body, g)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// EnrichDocument wraps every whole-word, case-insensitive occurrence of a
// glossary term in a tooltip annotation, and refreshes the stale tooltip of
// existing annotations the term matches. An annotation whose text is itself
// a glossary term is refreshed only by that term.
//
// When nothing changes, the returned HTML is body itself, byte for byte, so
// callers can detect no-op pages with string equality. Running the result
// through EnrichDocument again with the same glossary changes nothing.
func (e *Enricher) EnrichDocument(body string, g *Glossary) (Result, error) {
	res := Result{HTML: body}
	if g == nil {
		return res, ErrNilGlossary
	}
	if g.Len() == 0 || strings.TrimSpace(body) == "" {
		return res, nil
	}

	doc, err := pipeline.ParseDocument(body)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}

	entries := e.order.arrange(g.Entries())
	pass := newTooltipPass(entries)
	for i, entry := range entries {
		pattern, err := compileTerm(entry.Term)
		if err != nil {
			continue
		}
		tooltip := truncate(entry.Definition, e.maxTooltip)

		// Snapshot first: nodes created during this pass are not revisited by it
		for _, text := range pipeline.TextNodes(doc.Root()) {
			e.annotateText(text, i, pattern, tooltip, pass, &res)
		}
	}
	pass.apply(&res)

	if !res.Changed() {
		return res, nil
	}

	out, err := doc.Render()
	if err != nil {
		return Result{HTML: body}, fmt.Errorf("%w: %v", ErrMalformedHTML, err)
	}
	res.HTML = out
	return res, nil
}

// annotateText applies the entry at index i to one text node.
func (e *Enricher) annotateText(n *html.Node, i int, pattern *regexp.Regexp, tooltip string, pass *tooltipPass, res *Result) {
	if span := n.Parent; pipeline.IsAnnotation(span) {
		switch owner := pass.owner(span); {
		case owner == i:
			pass.pending[span] = tooltip
		case owner < 0 && len(findWholeWords(pattern, n.Data)) > 0:
			pass.pending[span] = tooltip
		}
		return
	}

	ranges := findWholeWords(pattern, n.Data)
	if len(ranges) == 0 {
		return
	}
	pipeline.WrapRanges(n, ranges, func(match string) *html.Node {
		span := pipeline.NewAnnotation(match, tooltip, e.style)
		pass.created[span] = true
		return span
	})
	res.Added += len(ranges)
}

// tooltipPass collects the tooltip each annotation should carry and writes
// them once every term has been applied, so the last claim on a span wins
// and a span is counted at most once.
type tooltipPass struct {
	entries []Entry
	owners  map[*html.Node]int
	pending map[*html.Node]string
	created map[*html.Node]bool
}

func newTooltipPass(entries []Entry) *tooltipPass {
	return &tooltipPass{
		entries: entries,
		owners:  make(map[*html.Node]int),
		pending: make(map[*html.Node]string),
		created: make(map[*html.Node]bool),
	}
}

// owner returns the index of the last entry whose term spells the text of
// span, ignoring case, or -1 when no term does. An owned annotation is only
// refreshed by its owner.
func (p *tooltipPass) owner(span *html.Node) int {
	if i, ok := p.owners[span]; ok {
		return i
	}
	text := pipeline.NormalizeSpace(pipeline.TextContent(span))
	owner := -1
	for i, entry := range p.entries {
		if strings.EqualFold(text, pipeline.NormalizeSpace(entry.Term)) {
			owner = i
		}
	}
	p.owners[span] = owner
	return owner
}

// apply writes pending tooltips. Only annotations that existed before this
// pass and whose tooltip actually changed count as refreshed.
func (p *tooltipPass) apply(res *Result) {
	for span, tooltip := range p.pending {
		if current, _ := pipeline.Attr(span, pipeline.TooltipAttr); current == tooltip {
			continue
		}
		pipeline.SetAttr(span, pipeline.TooltipAttr, tooltip)
		if !p.created[span] {
			res.Refreshed++
		}
	}
}

// compileTerm builds a case-insensitive pattern matching term literally.
func compileTerm(term string) (*regexp.Regexp, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("empty term")
	}
	return regexp.Compile("(?i)" + regexp.QuoteMeta(term))
}

// findWholeWords returns the byte ranges of matches in s that are bounded by
// non-word characters or the ends of s. Ranges are sorted and disjoint.
func findWholeWords(pattern *regexp.Regexp, s string) [][2]int {
	var ranges [][2]int
	for pos := 0; pos < len(s); {
		loc := pattern.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && isWordBoundary(s, start, end) {
			ranges = append(ranges, [2]int{start, end})
			pos = end
			continue
		}
		// Retry one character later so overlapping candidates are not missed
		_, size := utf8.DecodeRuneInString(s[start:])
		pos = start + size
	}
	return ranges
}

// isWordBoundary reports whether s[start:end] is not glued to a word
// character on either side.
func isWordBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
