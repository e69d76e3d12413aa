package digestserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerDashboardOverview(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "dashboard_overview",
		Description: "Daily study dashboard. Returns tracked YouTube playlists with unseen video counts (last 5 days), unheard All India Radio episode counts per programme, and the latest items from Indian Express, ORF, IASGyan, PIB, ForumIAS and Insights. A failing source has an empty item list and an error string. Cached for 5 minutes; set refresh to rebuild.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input OverviewInput) (*mcp.CallToolResult, OverviewOutput, error) {
		out, err := svc.Overview(ctx, input.Refresh)
		if err != nil {
			return nil, OverviewOutput{}, err
		}
		return nil, out, nil
	})
}
