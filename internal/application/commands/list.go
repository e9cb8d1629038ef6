package commands

import (
	"context"

	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// ListArticlesCommand lists articles, optionally restricted to one cluster
type ListArticlesCommand struct {
	repo    ports.ContentRepository
	Cluster string
}

// NewListArticlesCommand creates a new ListArticlesCommand.
// An empty cluster lists every article.
func NewListArticlesCommand(repo ports.ContentRepository, cluster string) *ListArticlesCommand {
	return &ListArticlesCommand{
		repo:    repo,
		Cluster: cluster,
	}
}

// Execute runs the list articles command
func (c *ListArticlesCommand) Execute(ctx context.Context) ([]domain.Article, error) {
	if c.Cluster == "" {
		return c.repo.GetAllArticles(), nil
	}
	return c.repo.GetArticlesByCluster(c.Cluster), nil
}

// ListClustersCommand lists every topic cluster with its article count
type ListClustersCommand struct {
	repo ports.ContentRepository
}

// NewListClustersCommand creates a new ListClustersCommand
func NewListClustersCommand(repo ports.ContentRepository) *ListClustersCommand {
	return &ListClustersCommand{repo: repo}
}

// Execute runs the list clusters command
func (c *ListClustersCommand) Execute(ctx context.Context) ([]domain.ClusterSummary, error) {
	return c.repo.ListClusters(), nil
}
