package digestserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 9

// RegisterTools registers every dashboard tool on the given MCP server.
func RegisterTools(server *mcp.Server, svc *Service) {
	registerDashboardOverview(server, svc)
	registerPlaylistUnseen(server, svc)
	registerPlaylistAdd(server, svc)
	registerMarkSeen(server, svc)
	registerEpisodesUnheard(server, svc)
	registerPIBDocuments(server, svc)
	registerSourceItems(server, svc)
	registerArticleRead(server, svc)
	registerRedditPosts(server, svc)
}
