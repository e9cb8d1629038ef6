package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/frontmatter"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// contentExtensions are the file suffixes treated as articles
var contentExtensions = []string{".md", ".markdown"}

// Options configures a Repository
type Options struct {
	WordsPerMinute int
	Logger         *zap.Logger
}

// Repository implements ports.ContentRepository over a directory of markdown files.
// The collection lives in memory and is swapped as a whole on each Load.
type Repository struct {
	contentDir string
	opts       Options
	logger     *zap.Logger

	mu       sync.RWMutex
	articles []domain.Article // sorted by slug
	bySlug   map[string]int
}

var _ ports.ContentRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository. Call Load before querying.
func NewRepository(contentDir string, opts Options) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(contentDir, "~") {
		home, _ := os.UserHomeDir()
		contentDir = filepath.Join(home, contentDir[1:])
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		contentDir: contentDir,
		opts:       opts,
		logger:     logger,
		bySlug:     make(map[string]int),
	}
}

// ContentDir returns the directory articles are loaded from
func (r *Repository) ContentDir() string {
	return r.contentDir
}

// Load walks the content directory and replaces the in-memory collection.
// Two files resolving to the same slug fail the load with a DuplicateSlugError.
func (r *Repository) Load(ctx context.Context) error {
	info, err := os.Stat(r.contentDir)
	if err != nil {
		return fmt.Errorf("failed to read content directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("content path %s is not a directory", r.contentDir)
	}

	var articles []domain.Article
	seen := make(map[string]string) // slug -> path

	// WalkDir visits entries in lexical order, so the first file of a
	// duplicate pair is always the same one
	err = filepath.WalkDir(r.contentDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != r.contentDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isContentFile(d.Name()) {
			return nil
		}

		article, err := r.parseFile(path)
		if err != nil {
			return err
		}

		if prev, ok := seen[article.Slug]; ok {
			return &application.DuplicateSlugError{
				Slug:       article.Slug,
				FirstPath:  prev,
				SecondPath: path,
			}
		}
		seen[article.Slug] = path
		articles = append(articles, article)
		return nil
	})
	if err != nil {
		return fmt.Errorf("loading content from %s: %w", r.contentDir, err)
	}

	domain.SortArticlesBySlug(articles)

	r.mu.Lock()
	r.articles = articles
	r.reindexLocked()
	r.mu.Unlock()

	r.logger.Debug("content loaded",
		zap.String("dir", r.contentDir),
		zap.Int("articles", len(articles)))
	return nil
}

// parseFile reads one content file. Front-matter that fails to decode is
// logged and the whole file is treated as body. The mtime is taken before
// reading so an edit racing the read is never stamped as seen.
func (r *Repository) parseFile(path string) (domain.Article, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fm domain.FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		r.logger.Warn("could not parse front-matter, treating file as body",
			zap.String("path", path),
			zap.Error(err))
		fm = domain.FrontMatter{}
		body = content
	}

	article := domain.ParseArticle(fm, strings.TrimSpace(string(body)), path, slugFromPath(path),
		domain.ParseOptions{WordsPerMinute: r.opts.WordsPerMinute})
	article.FileModTime = info.ModTime()
	return article, nil
}

func (r *Repository) reindexLocked() {
	r.bySlug = make(map[string]int, len(r.articles))
	for i, a := range r.articles {
		r.bySlug[a.Slug] = i
	}
}

// GetAllArticles returns every article sorted by slug
func (r *Repository) GetAllArticles() []domain.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneArticles(r.articles)
}

// GetAllSlugs returns every slug in sorted order
func (r *Repository) GetAllSlugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, len(r.articles))
	for i, a := range r.articles {
		slugs[i] = a.Slug
	}
	return slugs
}

// GetArticleBySlug returns the article with the given slug
func (r *Repository) GetArticleBySlug(slug string) (*domain.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.bySlug[slug]
	if !ok {
		return nil, &application.NotFoundError{Kind: "article", Key: slug}
	}
	a := cloneArticle(r.articles[i])
	return &a, nil
}

// GetArticlesByCluster returns the articles of a cluster, highest priority first
func (r *Repository) GetArticlesByCluster(cluster string) []domain.Article {
	r.mu.RLock()
	out := cloneArticles(domain.FilterByCluster(r.articles, cluster))
	r.mu.RUnlock()

	domain.SortByPriority(out)
	return out
}

// GetRelatedArticles returns up to limit same-cluster articles, excluding slug itself
func (r *Repository) GetRelatedArticles(slug string, limit int) []domain.Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneArticles(domain.SelectRelated(r.articles, slug, limit))
}

// ListClusters returns cluster summaries sorted by name
func (r *Repository) ListClusters() []domain.ClusterSummary {
	r.mu.RLock()
	articles := cloneArticles(r.articles)
	r.mu.RUnlock()
	return domain.SummarizeClusters(articles)
}

// Search matches the query against slug, title, cluster and description
func (r *Repository) Search(query string) ([]domain.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.SearchResult
	for _, a := range r.articles {
		for _, field := range []string{a.Title, a.Slug, a.Cluster, a.Description} {
			if strings.Contains(strings.ToLower(field), query) {
				results = append(results, domain.SearchResult{
					Slug:        a.Slug,
					Title:       a.Title,
					Cluster:     a.Cluster,
					MatchedText: field,
				})
				break
			}
		}
	}
	return results, nil
}

// CreateArticle writes <contentDir>/<slug>.md and adds it to the collection.
// Existing files are never overwritten.
func (r *Repository) CreateArticle(fm domain.FrontMatter, slug, body string) (*domain.Article, error) {
	if !domain.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: %q", application.ErrInvalidSlug, slug)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bySlug[slug]; ok {
		return nil, fmt.Errorf("article %s: %w", slug, application.ErrAlreadyExists)
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front-matter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(header)
	buf.WriteString("---\n\n")
	buf.WriteString(body)

	if err := os.MkdirAll(r.contentDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create content directory: %w", err)
	}

	path := filepath.Join(r.contentDir, slug+".md")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("file %s: %w", path, application.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write article: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write article: %w", err)
	}

	article := domain.ParseArticle(fm, strings.TrimSpace(body), path, slug,
		domain.ParseOptions{WordsPerMinute: r.opts.WordsPerMinute})
	if info, err := os.Stat(path); err == nil {
		article.FileModTime = info.ModTime()
	}

	r.articles = append(r.articles, article)
	domain.SortArticlesBySlug(r.articles)
	r.reindexLocked()

	r.logger.Info("article created", zap.String("slug", slug), zap.String("path", path))

	out := cloneArticle(article)
	return &out, nil
}

func isContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range contentExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// slugFromPath derives the fallback slug from a file name ("Heat-Pumps.md" -> "heat-pumps")
func slugFromPath(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}

func cloneArticle(a domain.Article) domain.Article {
	a.Tags = append([]string(nil), a.Tags...)
	a.InvalidDates = append([]string(nil), a.InvalidDates...)
	return a
}

func cloneArticles(in []domain.Article) []domain.Article {
	if in == nil {
		return nil
	}
	out := make([]domain.Article, len(in))
	for i, a := range in {
		out[i] = cloneArticle(a)
	}
	return out
}
