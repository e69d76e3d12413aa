package sources

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/anatolykoptev/go_digest/internal/engine"
)

// ReaderKind selects a full-article reader.
type ReaderKind string

const (
	ReaderGeneric  ReaderKind = "generic"
	ReaderInsights ReaderKind = "insights"
	ReaderHindu    ReaderKind = "hindu"
	ReaderForumIAS ReaderKind = "forumias"
)

var (
	genericContentRe  = regexp.MustCompile(`content|article-body|story`)
	genericTitleRe    = regexp.MustCompile(`title|headline`)
	bylineRe          = regexp.MustCompile(`editor|author|date|byline|meta`)
	insightsContentRe = regexp.MustCompile(`entry-content|article-content|post-content`)
	hinduContentRe    = regexp.MustCompile(`articlebody|content|story-body`)
	forumIASJunkRe    = regexp.MustCompile(`mobile_ad|web_ad|sharedaddy|robots-nocontent`)
)

const (
	insightsTags = "h1, h2, h3, h4, p, ul, ol, blockquote, table"
	hinduTags    = "h1, h2, h3, h4, p, ul, ol"
)

// Readers reads full articles through one Fetcher.
type Readers struct {
	f *engine.Fetcher
}

func NewReaders(f *engine.Fetcher) *Readers {
	return &Readers{f: f}
}

// Read dispatches to the reader for kind. An unknown kind is an error.
func (r *Readers) Read(ctx context.Context, kind ReaderKind, pageURL string) (engine.Article, error) {
	switch kind {
	case ReaderGeneric, "":
		return r.ReadArticle(ctx, pageURL)
	case ReaderInsights:
		return r.ReadInsightsArticle(ctx, pageURL)
	case ReaderHindu:
		return r.ReadHinduArticle(ctx, pageURL)
	case ReaderForumIAS:
		return r.ReadForumIASArticle(ctx, pageURL)
	}
	return engine.Article{}, fmt.Errorf("unknown reader %q", kind)
}

// firstWithClass returns the first element matching sel whose class
// attribute matches re.
func firstWithClass(doc *goquery.Selection, sel string, re *regexp.Regexp) *goquery.Selection {
	return doc.Find(sel).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return re.MatchString(attr(s, "class"))
	}).First()
}

func finish(a engine.Article) engine.Article {
	a.Markdown = engine.RenderMarkdown(a.Blocks)
	return a
}

// ReadArticle reads a news article: #pcl-full-content, then article, main
// or a content-like div, then readability over the whole page.
func (r *Readers) ReadArticle(ctx context.Context, pageURL string) (engine.Article, error) {
	engine.IncrArticleReads()
	body, err := r.f.Get(ctx, pageURL, nil)
	if err != nil {
		return engine.Article{}, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return engine.Article{}, fmt.Errorf("parse html: %w", err)
	}

	a := engine.Article{URL: pageURL}
	if t := engine.Text(firstWithClass(doc.Selection, "h1, h2", genericTitleRe)); t != "" {
		a.Title = t
	} else {
		a.Title = engine.DocumentTitle(doc)
	}
	a.Byline = engine.CollapseSpace(firstWithClass(doc.Selection, "div, span", bylineRe).Text())

	container := doc.Find("div#pcl-full-content").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() == 0 {
		container = doc.Find("main").First()
	}
	if container.Length() == 0 {
		container = firstWithClass(doc.Selection, "div", genericContentRe)
	}
	if container.Length() > 0 {
		a.Blocks = engine.ExtractBlocks(container, engine.ArticleTags, engine.Origin(pageURL))
		return finish(a), nil
	}

	title, byline, blocks, err := engine.ReadabilityBlocks(body, pageURL)
	if err != nil {
		return engine.Article{}, engine.Structural(pageURL, "article content")
	}
	if a.Title == "" {
		a.Title = title
	}
	if a.Byline == "" {
		a.Byline = byline
	}
	a.Blocks = blocks
	return finish(a), nil
}

// ReadInsightsArticle reads the entry body of an answer-writing post.
func (r *Readers) ReadInsightsArticle(ctx context.Context, pageURL string) (engine.Article, error) {
	engine.IncrArticleReads()
	doc, err := r.f.GetDocument(ctx, pageURL)
	if err != nil {
		return engine.Article{}, err
	}
	body := firstWithClass(doc.Selection, "div", insightsContentRe)
	if body.Length() == 0 {
		return engine.Article{}, engine.Structural(pageURL, "div.entry-content")
	}
	return finish(engine.Article{
		URL:    pageURL,
		Title:  engine.DocumentTitle(doc),
		Blocks: engine.ExtractBlocks(body, insightsTags, engine.Origin(pageURL)),
	}), nil
}

// ReadHinduArticle reads a learning-corner article. When no body container
// is found the whole document is scanned.
func (r *Readers) ReadHinduArticle(ctx context.Context, pageURL string) (engine.Article, error) {
	engine.IncrArticleReads()
	doc, err := r.f.GetDocument(ctx, pageURL)
	if err != nil {
		return engine.Article{}, err
	}
	area := firstWithClass(doc.Selection, "div", hinduContentRe)
	if area.Length() == 0 {
		area = doc.Selection
	}
	return finish(engine.Article{
		URL:    pageURL,
		Title:  engine.DocumentTitle(doc),
		Blocks: engine.ExtractBlocks(area, hinduTags, engine.Origin(pageURL)),
	}), nil
}

// ReadForumIASArticle reads div.entry-content child by child, keeping bare
// text nodes and captioned images and dropping ad containers.
func (r *Readers) ReadForumIASArticle(ctx context.Context, pageURL string) (engine.Article, error) {
	engine.IncrArticleReads()
	doc, err := r.f.GetDocument(ctx, pageURL)
	if err != nil {
		return engine.Article{}, err
	}
	content := doc.Find("div.entry-content").First()
	if content.Length() == 0 {
		return engine.Article{}, engine.Structural(pageURL, "div.entry-content")
	}
	content.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return forumIASJunkRe.MatchString(attr(s, "class"))
	}).Remove()

	base := engine.Origin(pageURL)
	var blocks []engine.Block
	content.Contents().Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		if goquery.NodeName(s) == "#text" {
			if b, ok := engine.TextBlock(node.Data); ok {
				blocks = append(blocks, b)
			}
			return
		}
		if goquery.NodeName(s) == "div" && engine.HasClass(s, "wp-caption") {
			img := s.Find("img").First()
			src := strings.TrimSpace(attr(img, "src"))
			if src == "" {
				return
			}
			caption := engine.Text(s.Find("figcaption, .wp-caption-text").First())
			blocks = append(blocks, engine.ImageBlock(engine.ResolveURL(base, src), strings.TrimSpace(attr(img, "alt")), caption))
			return
		}
		if b, ok := engine.BlockFor(s, base); ok {
			blocks = append(blocks, b)
		}
	})

	return finish(engine.Article{
		URL:    pageURL,
		Title:  engine.DocumentTitle(doc),
		Blocks: blocks,
	}), nil
}
