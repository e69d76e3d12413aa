package digestserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSourceItems(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "source_items",
		Description: "Run a single source and return its items: air-spotlight, air-insight, air-money-talk, air-current-affairs, indian-express, orf, iasgyan-summaries, iasgyan-daily, pib-backgrounders, pib-factsheets, forumias, insights, mea (bilateral documents, last 90 days), prs, youtube:<playlistID> or reddit:<subreddit>. mea and prs are cached for an hour.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SourceItemsInput) (*mcp.CallToolResult, SourceView, error) {
		if input.Source == "" {
			return nil, SourceView{}, errors.New("source is required")
		}
		out, err := svc.SourceItems(ctx, input.Source)
		if err != nil {
			return nil, SourceView{}, err
		}
		return nil, out, nil
	})
}
