package ports

import "hvacguide/internal/domain"

// ArticleIndex provides a persisted search index over the article collection.
// Queries go through database indexes instead of scanning content files.
type ArticleIndex interface {
	// Lifecycle
	Open(contentDir string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental(articles []domain.Article) (*domain.SyncStats, error)
	SyncFull(articles []domain.Article) (*domain.SyncStats, error)

	// Queries
	Search(query string, limit int) ([]domain.SearchResult, error)
	CountByCluster() (map[string]int, error)
}
