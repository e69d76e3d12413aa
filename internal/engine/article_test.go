package engine

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractBlocksSuppressesNested(t *testing.T) {
	doc := mustDoc(t, `<div id="c">
		<h2>Context</h2>
		<p>Intro paragraph.</p>
		<ul>
			<li><p>Nested point one</p></li>
			<li>Point two</li>
		</ul>
		<blockquote><p>Quoted text</p></blockquote>
		<table><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>
		<p>   </p>
		<img src="/img/map.png" alt="Map">
	</div>`)

	blocks := ExtractBlocks(doc.Find("#c"), ArticleTags, "https://example.com")

	kinds := make([]string, len(blocks))
	for i, b := range blocks {
		kinds[i] = string(b.Kind)
	}
	want := "heading,paragraph,list,blockquote,table,image"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("kinds = %s, want %s", got, want)
	}

	if blocks[0].Level != 2 || blocks[0].Text != "Context" {
		t.Errorf("heading = %+v", blocks[0])
	}
	if len(blocks[2].Items) != 2 || blocks[2].Items[0] != "Nested point one" {
		t.Errorf("list items = %v", blocks[2].Items)
	}
	if blocks[3].Text != "Quoted text" {
		t.Errorf("blockquote = %q", blocks[3].Text)
	}
	if len(blocks[4].Rows) != 2 || blocks[4].Rows[1][1] != "2" {
		t.Errorf("table rows = %v", blocks[4].Rows)
	}
	if blocks[5].Src != "https://example.com/img/map.png" || blocks[5].Alt != "Map" {
		t.Errorf("image = %+v", blocks[5])
	}
}

func TestExtractBlocksEmptyContainer(t *testing.T) {
	doc := mustDoc(t, `<div></div>`)
	if got := ExtractBlocks(doc.Find("#missing"), ArticleTags, ""); got != nil {
		t.Errorf("ExtractBlocks(missing) = %v, want nil", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	doc := mustDoc(t, `<div id="c"><h2>Title</h2><p>Body text.</p><ol><li>one</li><li>two</li></ol></div>`)
	md := RenderMarkdown(ExtractBlocks(doc.Find("#c"), ArticleTags, ""))

	for _, want := range []string{"## Title", "Body text.", "1. one", "2. two"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestReadabilityBlocks(t *testing.T) {
	body := `<html><head><title>Policy Note</title></head><body>
		<nav><a href="/">Home</a></nav>
		<div class="story">
			<p>The first paragraph of the note is long enough to be treated as real content by the readability scorer, with commas, clauses, and detail.</p>
			<p>A second paragraph continues the discussion, again with enough words and punctuation, so that the container clearly wins over navigation.</p>
			<p>Another paragraph adds background on the scheme, its budget, its targets, and the ministries that share responsibility for delivery on the ground.</p>
			<p>Yet another paragraph reviews the outcomes so far, noting gaps in coverage, delays in funding, and the recommendations of the committee.</p>
			<p>A third paragraph closes the note with more sentences, more commas, and more words to push the score well past the threshold.</p>
		</div>
	</body></html>`

	_, _, blocks, err := ReadabilityBlocks([]byte(body), "https://example.com/note")
	if err != nil {
		t.Fatalf("ReadabilityBlocks: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("no blocks extracted")
	}
	joined := ""
	for _, b := range blocks {
		joined += b.Text + " "
	}
	if !strings.Contains(joined, "first paragraph") {
		t.Errorf("content missing first paragraph: %q", joined)
	}
}

func TestDocumentTitle(t *testing.T) {
	tests := []struct {
		body, want string
	}{
		{`<title>T</title><h1> Heading </h1>`, "Heading"},
		{`<head><title>T</title><meta property="og:title" content="OG"></head>`, "OG"},
		{`<title> Plain </title>`, "Plain"},
	}
	for _, tt := range tests {
		if got := DocumentTitle(mustDoc(t, tt.body)); got != tt.want {
			t.Errorf("DocumentTitle(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
