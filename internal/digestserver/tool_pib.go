package digestserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerPIBDocuments(server *mcp.Server, svc *Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "pib_documents",
		Description: "Fetch Press Information Bureau backgrounders or factsheets, optionally filtered by ministry, year, month and day. Year defaults to the current year; other filters default to all.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input PIBInput) (*mcp.CallToolResult, SourceView, error) {
		out, err := svc.PIBDocuments(ctx, input)
		if err != nil {
			return nil, SourceView{}, err
		}
		return nil, out, nil
	})
}
