package ports

import (
	"context"

	"hvacguide/internal/domain"
)

// ContentRepository defines the interface for the article store
type ContentRepository interface {
	// Load (re)reads every content file. On error the previous collection stays in place.
	Load(ctx context.Context) error

	// Query operations
	GetAllArticles() []domain.Article
	GetAllSlugs() []string
	GetArticleBySlug(slug string) (*domain.Article, error)
	GetArticlesByCluster(cluster string) []domain.Article
	GetRelatedArticles(slug string, limit int) []domain.Article
	ListClusters() []domain.ClusterSummary

	// Search without a persisted index
	Search(query string) ([]domain.SearchResult, error)

	// Create operations
	CreateArticle(fm domain.FrontMatter, slug, body string) (*domain.Article, error)

	// Path resolution
	ContentDir() string
}
