package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"hvacguide/internal/domain"
	"hvacguide/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.ArticleIndex using SQLite
type Index struct {
	db         *sql.DB
	contentDir string
	dbPath     string
	logger     *zap.Logger
}

// Ensure Index implements ArticleIndex
var _ ports.ArticleIndex = (*Index)(nil)

// NewIndex creates a new SQLite index. A nil logger discards output.
func NewIndex(logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{logger: logger}
}

// Open initializes the index for the given content directory
func (idx *Index) Open(contentDir string) error {
	// Expand ~ in path
	if strings.HasPrefix(contentDir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		contentDir = filepath.Join(home, contentDir[1:])
	}
	if abs, err := filepath.Abs(contentDir); err == nil {
		contentDir = abs
	}

	dbPath, err := databasePath(contentDir)
	if err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	idx.contentDir = contentDir
	idx.dbPath = dbPath

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS articles (
			slug TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cluster TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			priority INTEGER NOT NULL,
			modified INTEGER,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_articles_cluster ON articles(cluster);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	idx.logger.Debug("index opened", zap.String("db", idx.dbPath))
	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// Path returns the database file backing the index
func (idx *Index) Path() string {
	return idx.dbPath
}

// NeedsFullRebuild returns true if the index was built by another schema
// version, for another content directory, or never synced at all
func (idx *Index) NeedsFullRebuild() bool {
	var version, contentHash, lastSync string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'content_path_hash'").Scan(&contentHash)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'last_sync_time'").Scan(&lastSync)

	return version != schemaVersion || contentHash != hashContentPath(idx.contentDir) || lastSync == ""
}

// databasePath returns the path for the SQLite database under $XDG_DATA_HOME,
// creating the parent directory if needed
func databasePath(contentDir string) (string, error) {
	return xdg.DataFile(filepath.Join("hvacguide", hashContentPath(contentDir)+".db"))
}

// hashContentPath returns a short hash of the content directory
func hashContentPath(contentDir string) string {
	h := sha256.Sum256([]byte(contentDir))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// Search returns up to limit articles whose title, slug, cluster or
// description contains query, highest priority first
func (idx *Index) Search(query string, limit int) ([]domain.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := idx.db.Query(`
		SELECT slug, title, cluster, description
		FROM articles
		WHERE lower(title) LIKE ?1 ESCAPE '\'
		   OR lower(slug) LIKE ?1 ESCAPE '\'
		   OR lower(cluster) LIKE ?1 ESCAPE '\'
		   OR lower(description) LIKE ?1 ESCAPE '\'
		ORDER BY priority, slug
		LIMIT ?2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		var description string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Cluster, &description); err != nil {
			return nil, err
		}
		r.MatchedText = matchedField(query, r.Title, r.Slug, r.Cluster, description)
		results = append(results, r)
	}
	return results, rows.Err()
}

// CountByCluster returns the number of indexed articles per cluster
func (idx *Index) CountByCluster() (map[string]int, error) {
	rows, err := idx.db.Query(`
		SELECT cluster, COUNT(*) FROM articles
		WHERE cluster != ''
		GROUP BY cluster
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count clusters: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cluster string
		var n int
		if err := rows.Scan(&cluster, &n); err != nil {
			return nil, err
		}
		counts[cluster] = n
	}
	return counts, rows.Err()
}

func matchedField(query string, fields ...string) string {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return f
		}
	}
	return ""
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
