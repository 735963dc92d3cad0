package pipeline

import (
	"testing"

	"golang.org/x/net/html"
)

// ---------------------------------------------------------------------------
// TestNewAnnotation / TestIsAnnotation
// ---------------------------------------------------------------------------

func TestNewAnnotation(t *testing.T) {
	t.Parallel()

	span := NewAnnotation("Python", `a "quoted" <def>`, "color: red")
	if !IsAnnotation(span) {
		t.Fatal("NewAnnotation result is not an annotation")
	}

	doc := &Document{root: &html.Node{Type: html.DocumentNode}, isFragment: true}
	doc.root.AppendChild(span)
	got, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<span title="a &#34;quoted&#34; &lt;def&gt;" style="color: red">Python</span>`
	if got != want {
		t.Errorf("Render() = %s, want %s", got, want)
	}
}

func TestIsAnnotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"span with title", `<span title="x">t</span>`, true},
		{"span with empty title", `<span title="">t</span>`, true},
		{"span without title", `<span class="x">t</span>`, false},
		{"abbr with title", `<abbr title="x">t</abbr>`, false},
		{"plain paragraph", `<p>t</p>`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, text := textNode(t, tt.content)
			if got := IsAnnotation(text.Parent); got != tt.want {
				t.Errorf("IsAnnotation() = %v, want %v", got, tt.want)
			}
		})
	}

	if IsAnnotation(nil) {
		t.Error("IsAnnotation(nil) = true")
	}
}

func TestSetAttr(t *testing.T) {
	t.Parallel()

	doc, text := textNode(t, `<span title="old" style="s">t</span>`)
	SetAttr(text.Parent, TooltipAttr, "new")
	SetAttr(text.Parent, "lang", "en")

	got, err := doc.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<span title="new" style="s" lang="en">t</span>`; got != want {
		t.Errorf("Render() = %s, want %s", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestWrapRanges - In-place text splitting
// ---------------------------------------------------------------------------

func TestWrapRanges(t *testing.T) {
	t.Parallel()

	bold := func(s string) *html.Node {
		b := &html.Node{Type: html.ElementNode, Data: "b"}
		b.AppendChild(&html.Node{Type: html.TextNode, Data: s})
		return b
	}

	tests := []struct {
		name    string
		content string
		ranges  [][2]int
		want    string
	}{
		{"middle", `<p>a cat sat</p>`, [][2]int{{2, 5}}, `<p>a <b>cat</b> sat</p>`},
		{"whole text", `<p>cat</p>`, [][2]int{{0, 3}}, `<p><b>cat</b></p>`},
		{"start and end", `<p>cat and cat</p>`, [][2]int{{0, 3}, {8, 11}}, `<p><b>cat</b> and <b>cat</b></p>`},
		{"adjacent", `<p>abcd</p>`, [][2]int{{0, 2}, {2, 4}}, `<p><b>ab</b><b>cd</b></p>`},
		{"no ranges", `<p>cat</p>`, nil, `<p>cat</p>`},
		{"escapes text", `<p>a &lt; cat</p>`, [][2]int{{4, 7}}, `<p>a &lt; <b>cat</b></p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, text := textNode(t, tt.content)
			WrapRanges(text, tt.ranges, bold)

			got, err := doc.Render()
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render() = %s, want %s", got, tt.want)
			}
		})
	}
}
