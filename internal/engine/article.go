package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// BlockKind identifies the structural role of an article block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
	BlockTable     BlockKind = "table"
	BlockQuote     BlockKind = "blockquote"
	BlockImage     BlockKind = "image"
	BlockText      BlockKind = "text"
)

// Block is one ordered unit of article content.
type Block struct {
	Kind    BlockKind  `json:"kind"`
	Level   int        `json:"level,omitempty"`   // heading level 1-6
	Ordered bool       `json:"ordered,omitempty"` // ol vs ul
	Text    string     `json:"text,omitempty"`
	Items   []string   `json:"items,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`
	Src     string     `json:"src,omitempty"`
	Alt     string     `json:"alt,omitempty"`
	Caption string     `json:"caption,omitempty"`

	html string
}

// Article is a fully extracted document.
type Article struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Byline   string  `json:"byline,omitempty"`
	Blocks   []Block `json:"blocks"`
	Markdown string  `json:"markdown,omitempty"`
}

// ArticleTags is the default block selector for body extraction.
const ArticleTags = "h1, h2, h3, h4, h5, h6, p, ul, ol, table, blockquote, figure, img"

// ExtractBlocks walks container in document order and emits one block per
// element matching tags. Image sources resolve against base, which is the
// site origin (see Origin), not the page URL. An element nested inside an already emitted block
// is skipped, so a <p> inside an emitted <li> list is not repeated.
func ExtractBlocks(container *goquery.Selection, tags, base string) []Block {
	if container == nil || container.Length() == 0 {
		return nil
	}
	root := container.Get(0)
	emitted := make(map[*html.Node]bool)
	var blocks []Block

	container.Find(tags).Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if insideEmitted(node, root, emitted) {
			return
		}
		b, ok := BlockFor(s, base)
		if !ok {
			return
		}
		emitted[node] = true
		blocks = append(blocks, b)
	})
	return blocks
}

func insideEmitted(n, root *html.Node, emitted map[*html.Node]bool) bool {
	for p := n.Parent; p != nil && p != root; p = p.Parent {
		if emitted[p] {
			return true
		}
	}
	return false
}

// BlockFor converts a single element to a block. ok is false for empty
// elements and unsupported tags.
func BlockFor(s *goquery.Selection, base string) (Block, bool) {
	outer, _ := goquery.OuterHtml(s)
	name := goquery.NodeName(s)

	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := Text(s)
		if text == "" {
			return Block{}, false
		}
		return Block{Kind: BlockHeading, Level: int(name[1] - '0'), Text: text, html: outer}, true

	case "p":
		text := Text(s)
		if text == "" {
			return Block{}, false
		}
		return Block{Kind: BlockParagraph, Text: text, html: outer}, true

	case "ul", "ol":
		var items []string
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if t := Text(li); t != "" {
				items = append(items, t)
			}
		})
		if len(items) == 0 {
			return Block{}, false
		}
		return Block{Kind: BlockList, Ordered: name == "ol", Items: items, html: outer}, true

	case "table":
		var rows [][]string
		s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, Text(td))
			})
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		})
		if len(rows) == 0 {
			return Block{}, false
		}
		return Block{Kind: BlockTable, Rows: rows, html: outer}, true

	case "blockquote":
		text := Text(s)
		if text == "" {
			return Block{}, false
		}
		return Block{Kind: BlockQuote, Text: text, html: outer}, true

	case "figure":
		img := s.Find("img").First()
		src := imageSrc(img)
		if src == "" {
			return Block{}, false
		}
		alt, _ := img.Attr("alt")
		return ImageBlock(ResolveURL(base, src), strings.TrimSpace(alt), Text(s.Find("figcaption").First())), true

	case "img":
		src := imageSrc(s)
		if src == "" {
			return Block{}, false
		}
		src = ResolveURL(base, src)
		alt, _ := s.Attr("alt")
		return Block{Kind: BlockImage, Src: src, Alt: strings.TrimSpace(alt),
			html: fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))}, true
	}
	return Block{}, false
}

// TextBlock wraps a bare text node.
func TextBlock(text string) (Block, bool) {
	text = CollapseSpace(text)
	if text == "" {
		return Block{}, false
	}
	return Block{Kind: BlockText, Text: text, html: "<p>" + html.EscapeString(text) + "</p>"}, true
}

// ImageBlock builds an image block with an optional caption.
func ImageBlock(src, alt, caption string) Block {
	b := Block{Kind: BlockImage, Src: src, Alt: alt, Caption: caption}
	b.html = fmt.Sprintf(`<figure><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`,
		html.EscapeString(src), html.EscapeString(alt), html.EscapeString(caption))
	return b
}

func imageSrc(s *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" && !strings.HasPrefix(v, "data:") {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// RenderMarkdown converts the blocks back to HTML fragments and then to Markdown.
func RenderMarkdown(blocks []Block) string {
	if len(blocks) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.html)
		sb.WriteByte('\n')
	}
	md, err := htmltomarkdown.ConvertString(sb.String())
	if err != nil {
		slog.Debug("article: markdown conversion failed", slog.Any("error", err))
		var text strings.Builder
		for _, b := range blocks {
			text.WriteString(b.Text)
			text.WriteString("\n\n")
		}
		return strings.TrimSpace(text.String())
	}
	return strings.TrimSpace(md)
}

// ReadabilityBlocks runs go-readability over body and extracts blocks from
// the cleaned content. Used when no known content container is present.
func ReadabilityBlocks(body []byte, pageURL string) (title, byline string, blocks []Block, err error) {
	u, _ := url.Parse(pageURL)
	art, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return "", "", nil, fmt.Errorf("readability: %w", err)
	}
	if art.Content == "" {
		return art.Title, art.Byline, nil, fmt.Errorf("readability: no content")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(art.Content))
	if err != nil {
		return art.Title, art.Byline, nil, fmt.Errorf("parse readability output: %w", err)
	}
	return art.Title, art.Byline, ExtractBlocks(doc.Selection, ArticleTags, Origin(pageURL)), nil
}

// DocumentTitle returns the first h1, then og:title, then <title>.
func DocumentTitle(doc *goquery.Document) string {
	if t := Text(doc.Find("h1").First()); t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	return Text(doc.Find("title").First())
}
