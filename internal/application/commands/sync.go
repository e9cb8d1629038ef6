package commands

import (
	"context"
	"fmt"

	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// SyncIndexCommand brings the search index in line with the loaded articles
type SyncIndexCommand struct {
	repo  ports.ContentRepository
	index ports.ArticleIndex
	Full  bool
}

// NewSyncIndexCommand creates a new SyncIndexCommand
func NewSyncIndexCommand(repo ports.ContentRepository, index ports.ArticleIndex, full bool) *SyncIndexCommand {
	return &SyncIndexCommand{
		repo:  repo,
		index: index,
		Full:  full,
	}
}

// Execute runs a full sync when requested or when the index needs a rebuild,
// otherwise an incremental one
func (c *SyncIndexCommand) Execute(ctx context.Context) (*domain.SyncStats, error) {
	articles := c.repo.GetAllArticles()

	if c.Full || c.index.NeedsFullRebuild() {
		stats, err := c.index.SyncFull(articles)
		if err != nil {
			return nil, fmt.Errorf("full index sync: %w", err)
		}
		return stats, nil
	}

	stats, err := c.index.SyncIncremental(articles)
	if err != nil {
		return nil, fmt.Errorf("incremental index sync: %w", err)
	}
	return stats, nil
}
