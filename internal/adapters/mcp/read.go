package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"hvacguide/internal/application"
	"hvacguide/internal/application/commands"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// ReadOptions configures the read-only tools
type ReadOptions struct {
	Index        ports.ArticleIndex // nil searches the repository directly
	RelatedLimit int
}

// RegisterReadTools adds all read-only content tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.ContentRepository, opts ReadOptions) {
	s.AddTool(listArticlesTool(), listArticlesHandler(repo))
	s.AddTool(getArticleTool(), getArticleHandler(repo, opts.RelatedLimit))
	s.AddTool(relatedArticlesTool(), relatedArticlesHandler(repo, opts.RelatedLimit))
	s.AddTool(listClustersTool(), listClustersHandler(repo))
	s.AddTool(searchTool(), searchHandler(repo, opts.Index))
	s.AddTool(validateTool(), validateHandler(repo))
}

// --- list_articles ---

func listArticlesTool() mcp.Tool {
	return mcp.NewTool("list_articles",
		mcp.WithDescription("List articles. Without arguments lists every article by slug. With a cluster lists that cluster's articles, highest priority first."),
		mcp.WithString("cluster",
			mcp.Description("Exact cluster name (e.g. Heat Pumps). Omit to list all articles."),
		),
	)
}

func listArticlesHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cluster := req.GetString("cluster", "")

		articles, err := commands.NewListArticlesCommand(repo, cluster).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(articles, formatArticle)
	}
}

// --- get_article ---

func getArticleTool() mcp.Tool {
	return mcp.NewTool("get_article",
		mcp.WithDescription("Get one article by slug: metadata, markdown body and related articles."),
		mcp.WithString("slug",
			mcp.Description("Article slug (e.g. heat-pump-sizing)"),
			mcp.Required(),
		),
	)
}

func getArticleHandler(repo ports.ContentRepository, relatedLimit int) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		view, err := commands.NewGetArticleCommand(repo, slug, relatedLimit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		a := view.Article
		var sb strings.Builder
		fmt.Fprintf(&sb, "slug: %s\n", a.Slug)
		fmt.Fprintf(&sb, "title: %s\n", a.Title)
		fmt.Fprintf(&sb, "description: %s\n", a.Description)
		fmt.Fprintf(&sb, "cluster: %s\n", a.Cluster)
		fmt.Fprintf(&sb, "role: %s\n", a.Role)
		fmt.Fprintf(&sb, "priority: %s\n", a.Priority)
		fmt.Fprintf(&sb, "modified: %s\n", formatDate(a.Modified))
		fmt.Fprintf(&sb, "reading_time: %d min\n", a.ReadingTime)
		fmt.Fprintf(&sb, "path: %s\n", a.SourcePath)
		if len(view.Related) > 0 {
			sb.WriteString("related:\n")
			for _, r := range view.Related {
				fmt.Fprintf(&sb, "  - %s\n", r.Slug)
			}
		}
		sb.WriteString("\n")
		sb.WriteString(a.Body)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- related_articles ---

func relatedArticlesTool() mcp.Tool {
	return mcp.NewTool("related_articles",
		mcp.WithDescription("List articles in the same cluster as the given one, highest priority first. Unknown slugs return no results."),
		mcp.WithString("slug",
			mcp.Description("Article slug"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of articles (default from config)"),
		),
	)
}

func relatedArticlesHandler(repo ports.ContentRepository, defaultLimit int) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		if slug == "" {
			return toolError(fmt.Errorf("slug is required"))
		}
		limit := req.GetInt("limit", defaultLimit)

		related, err := commands.NewRelatedArticlesCommand(repo, slug, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(related, formatArticle)
	}
}

// --- list_clusters ---

func listClustersTool() mcp.Tool {
	return mcp.NewTool("list_clusters",
		mcp.WithDescription("List topic clusters with article counts and pillar articles."),
	)
}

func listClustersHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clusters, err := commands.NewListClustersCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(clusters, formatCluster)
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search articles by keyword over title, slug, cluster and description."),
		mcp.WithString("query",
			mcp.Description("Search query (at least 2 characters)"),
			mcp.Required(),
		),
	)
}

func searchHandler(repo ports.ContentRepository, index ports.ArticleIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		// Articles created through create_article are not indexed yet
		if index != nil {
			if _, err := commands.NewSyncIndexCommand(repo, index, false).Execute(ctx); err != nil {
				return toolError(err)
			}
		}

		results, err := commands.NewSearchCommand(repo, index, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Slug, r.Title, r.MatchedText)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- validate_content ---

func validateTool() mcp.Tool {
	return mcp.NewTool("validate_content",
		mcp.WithDescription("Report articles with missing or malformed metadata."),
	)
}

func validateHandler(repo ports.ContentRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issues, err := commands.NewValidateContentCommand(repo).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(issues) == 0 {
			return mcp.NewToolResultText("No issues found."), nil
		}
		return formatEntities(issues, application.Issue.String)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatArticle(a domain.Article) string {
	return fmt.Sprintf("%s  %s  [%s %s]", a.Slug, a.Title, a.Cluster, a.Priority)
}

func formatCluster(c domain.ClusterSummary) string {
	pillar := "-"
	if c.Pillar != nil {
		pillar = c.Pillar.Slug
	}
	return fmt.Sprintf("%s  %d articles  pillar: %s", c.Name, c.Count, pillar)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
