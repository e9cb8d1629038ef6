package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hvacguide/internal/application/commands"
	"hvacguide/internal/ports"
)

// RegisterWriteTools adds all write content tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.ContentRepository) {
	s.AddTool(createArticleTool(), createArticleHandler(repo))
}

// --- create_article ---

func createArticleTool() mcp.Tool {
	return mcp.NewTool("create_article",
		mcp.WithDescription("Create a new article file with front-matter in the content directory. Refuses to overwrite an existing slug."),
		mcp.WithString("slug",
			mcp.Description("URL slug: lowercase letters, digits and single dashes (e.g. duct-sealing)"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Article title"),
			mcp.Required(),
		),
		mcp.WithString("cluster",
			mcp.Description("Topic cluster the article belongs to"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("One-sentence summary"),
		),
		mcp.WithString("role",
			mcp.Description("Cluster role"),
			mcp.Enum("pillar", "hub", "spoke"),
		),
		mcp.WithString("priority",
			mcp.Description("Editorial priority"),
			mcp.Enum("P1", "P2", "P3"),
		),
	)
}

func createArticleHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateArticleCommand(repo,
			req.GetString("slug", ""),
			req.GetString("title", ""),
			req.GetString("cluster", ""))
		cmd.Description = req.GetString("description", "")
		cmd.Role = req.GetString("role", "")
		cmd.Priority = req.GetString("priority", "")

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}
