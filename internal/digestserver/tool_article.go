package digestserver

import (
	"context"

	"github.com/anatolykoptev/go_digest/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerArticleRead(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "article_read",
		Description: "Read a full article as ordered content blocks (headings, paragraphs, lists, tables, quotes, images) plus Markdown. Reader: generic for news sites, insights for insightsonindia.com, hindu for The Hindu learning corner, forumias for forumias.com posts.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ArticleInput) (*mcp.CallToolResult, engine.Article, error) {
		a, err := svc.ReadArticle(ctx, input)
		if err != nil {
			return nil, engine.Article{}, err
		}
		return nil, a, nil
	})
}
