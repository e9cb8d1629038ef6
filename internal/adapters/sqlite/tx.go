package sqlite

import (
	"database/sql"
	"time"

	"hvacguide/internal/domain"
)

// indexTx groups the writes of one sync
type indexTx struct {
	tx *sql.Tx
}

func (idx *Index) beginTx() (*indexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

// upsertArticle inserts or replaces an article row
func (t *indexTx) upsertArticle(a *domain.Article, mtime int64) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO articles (slug, path, title, description, cluster, role, priority, modified, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Slug, a.SourcePath, a.Title, a.Description, a.Cluster, roleColumn(a.Role),
		a.Priority.Rank(), nullUnix(a.Modified), mtime)
	return err
}

// deleteArticle removes an article by slug
func (t *indexTx) deleteArticle(slug string) error {
	_, err := t.tx.Exec(`DELETE FROM articles WHERE slug = ?`, slug)
	return err
}

// deleteAll clears the articles table
func (t *indexTx) deleteAll() error {
	_, err := t.tx.Exec(`DELETE FROM articles`)
	return err
}

// writeMeta records the schema version, content directory and sync time
func (t *indexTx) writeMeta(contentHash string, now time.Time) error {
	meta := []struct {
		key   string
		value any
	}{
		{"schema_version", schemaVersion},
		{"content_path_hash", contentHash},
		{"last_sync_time", now.Unix()},
	}
	for _, m := range meta {
		if _, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, m.key, m.value); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}

func roleColumn(r domain.Role) string {
	if r == domain.RoleUnknown {
		return ""
	}
	return r.String()
}

// nullUnix returns nil for zero times (for nullable columns)
func nullUnix(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
