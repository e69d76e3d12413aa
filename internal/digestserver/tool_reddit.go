package digestserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerRedditPosts(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reddit_posts",
		Description: "Fetch posts from one or more subreddits (hot, new or top). Each post has author, score, comment count, flair, nsfw and spoiler flags, and a 300 character excerpt. Unavailable subreddits are skipped.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RedditInput) (*mcp.CallToolResult, ItemsOutput, error) {
		return nil, itemsOutput(svc.RedditPosts(ctx, input)), nil
	})
}
