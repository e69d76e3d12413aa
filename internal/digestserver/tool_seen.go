package digestserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerMarkSeen(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_seen",
		Description: "Mark videos as watched (category videos, ids are video IDs) or radio episodes as listened (category episodes, ids are audio URLs). Marked items no longer appear in playlist_unseen, episodes_unheard or the dashboard counts.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, input MarkSeenInput) (*mcp.CallToolResult, MarkSeenOutput, error) {
		out, err := svc.MarkSeen(input.Category, input.IDs)
		if err != nil {
			return nil, MarkSeenOutput{}, err
		}
		return nil, out, nil
	})
}

func registerEpisodesUnheard(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "episodes_unheard",
		Description: "List recent All India Radio episodes of one programme not yet marked listened: air-spotlight, air-insight, air-money-talk (5 days) or air-current-affairs (10 days). Each item carries its audio URL.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input EpisodesInput) (*mcp.CallToolResult, ItemsOutput, error) {
		items, err := svc.EpisodesUnheard(ctx, input.Category)
		if err != nil {
			return nil, ItemsOutput{}, err
		}
		return nil, itemsOutput(items), nil
	})
}
