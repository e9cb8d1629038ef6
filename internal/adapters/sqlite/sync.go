package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"hvacguide/internal/domain"
)

type indexedRow struct {
	path  string
	mtime int64
}

// SyncFull replaces the whole index with the given articles
func (idx *Index) SyncFull(articles []domain.Article) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.Rollback()

	if err := tx.deleteAll(); err != nil {
		return nil, fmt.Errorf("failed to clear index: %w", err)
	}

	for i := range articles {
		a := &articles[i]
		stats.Scanned++
		if err := tx.upsertArticle(a, articleMtime(a)); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", a.Slug, err)
		}
		stats.Added++
	}

	if err := tx.writeMeta(hashContentPath(idx.contentDir), time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	stats.Duration = time.Since(start)
	idx.logger.Debug("full index sync",
		zap.Int("added", stats.Added),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

// SyncIncremental writes only articles that are new, moved or whose file
// changed since they were indexed, and drops slugs no longer present
func (idx *Index) SyncIncremental(articles []domain.Article) (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	existing, err := idx.indexedRows()
	if err != nil {
		return nil, err
	}

	tx, err := idx.beginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync: %w", err)
	}
	defer tx.Rollback()

	seen := make(map[string]bool, len(articles))
	for i := range articles {
		a := &articles[i]
		seen[a.Slug] = true
		stats.Scanned++

		mtime := articleMtime(a)
		prev, ok := existing[a.Slug]
		if ok && prev.path == a.SourcePath && prev.mtime == mtime {
			continue
		}

		if err := tx.upsertArticle(a, mtime); err != nil {
			return nil, fmt.Errorf("failed to index %s: %w", a.Slug, err)
		}
		if ok {
			stats.Updated++
		} else {
			stats.Added++
		}
	}

	for slug := range existing {
		if seen[slug] {
			continue
		}
		if err := tx.deleteArticle(slug); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", slug, err)
		}
		stats.Deleted++
	}

	if err := tx.writeMeta(hashContentPath(idx.contentDir), time.Now()); err != nil {
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sync: %w", err)
	}

	stats.Duration = time.Since(start)
	idx.logger.Debug("incremental index sync",
		zap.Int("added", stats.Added),
		zap.Int("updated", stats.Updated),
		zap.Int("deleted", stats.Deleted),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

func (idx *Index) indexedRows() (map[string]indexedRow, error) {
	rows, err := idx.db.Query(`SELECT slug, path, mtime FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]indexedRow)
	for rows.Next() {
		var slug string
		var r indexedRow
		if err := rows.Scan(&slug, &r.path, &r.mtime); err != nil {
			return nil, err
		}
		existing[slug] = r
	}
	return existing, rows.Err()
}

// articleMtime returns the modification time of the article's file as it
// was when the article was read, in nanoseconds, or 0 when unknown. The
// file is not stat'ed again: a newer mtime next to older content would hide
// the edit from later syncs.
func articleMtime(a *domain.Article) int64 {
	if a.FileModTime.IsZero() {
		return 0
	}
	return a.FileModTime.UnixNano()
}
