package digestserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPlaylistUnseen(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "playlist_unseen",
		Description: "List videos of a YouTube playlist published in the last 5 days that have not been marked watched, newest first. Mark them with mark_seen (category videos) once watched.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PlaylistUnseenInput) (*mcp.CallToolResult, ItemsOutput, error) {
		items, err := svc.PlaylistUnseen(ctx, input.PlaylistID)
		if err != nil {
			return nil, ItemsOutput{}, err
		}
		return nil, itemsOutput(items), nil
	})
}

func registerPlaylistAdd(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "playlist_add",
		Description: "Start tracking a YouTube playlist on the dashboard. Adding an already tracked playlist is a no-op.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PlaylistAddInput) (*mcp.CallToolResult, PlaylistAddOutput, error) {
		out, err := svc.AddPlaylist(ctx, input.PlaylistID)
		if err != nil {
			return nil, PlaylistAddOutput{}, err
		}
		return nil, out, nil
	})
}
