package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// recentLimit is the number of recently updated articles on the home page
const recentLimit = 10

// BuildOptions configures a Builder
type BuildOptions struct {
	OutputDir    string
	StaticDir    string
	Workers      int
	RelatedLimit int
}

// BuildStats holds statistics from a site build
type BuildStats struct {
	Articles int
	Hubs     int
	Assets   int
	Duration time.Duration
}

// Builder renders the whole content index to static files
type Builder struct {
	repo     ports.ContentRepository
	renderer *Renderer
	opts     BuildOptions
	logger   *zap.Logger
}

// NewBuilder creates a builder. A nil logger discards output.
func NewBuilder(repo ports.ContentRepository, renderer *Renderer, opts BuildOptions, logger *zap.Logger) *Builder {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{repo: repo, renderer: renderer, opts: opts, logger: logger}
}

// Build cleans the output directory and writes the home page, one hub per
// cluster, one page per article, the sitemap and the static assets
func (b *Builder) Build(ctx context.Context) (*BuildStats, error) {
	start := time.Now()

	if err := b.checkOutputDir(); err != nil {
		return nil, err
	}

	articles := b.repo.GetAllArticles()
	clusters := b.repo.ListClusters()
	if err := checkClusterPaths(clusters); err != nil {
		return nil, err
	}
	if err := checkArticleSlugs(articles); err != nil {
		return nil, err
	}

	if err := os.RemoveAll(b.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to clean output directory: %w", err)
	}
	if err := os.MkdirAll(b.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stats := &BuildStats{}
	assets, err := b.copyStatic()
	if err != nil {
		return nil, err
	}
	stats.Assets = assets

	var rendered, hubs atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.opts.Workers)

	g.Go(func() error {
		return b.writePage("/", func(w io.Writer) error {
			return b.renderer.RenderHome(w, b.homePage(articles, clusters))
		})
	})

	for _, c := range clusters {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			page := &HubPage{
				Site:     b.renderer.Site(),
				Cluster:  c,
				Articles: hubArticles(b.repo.GetArticlesByCluster(c.Name)),
			}
			if err := b.writePage(c.Path(), func(w io.Writer) error {
				return b.renderer.RenderHub(w, page)
			}); err != nil {
				return err
			}
			hubs.Add(1)
			return nil
		})
	}

	for _, a := range articles {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			page, err := b.renderer.NewArticlePage(a, b.repo.GetRelatedArticles(a.Slug, b.opts.RelatedLimit))
			if err != nil {
				return err
			}
			if err := b.writePage(a.Permalink(), func(w io.Writer) error {
				return b.renderer.RenderArticle(w, page)
			}); err != nil {
				return err
			}
			rendered.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	if err := b.writeSitemap(articles, clusters); err != nil {
		return nil, err
	}

	stats.Articles = int(rendered.Load())
	stats.Hubs = int(hubs.Load())
	stats.Duration = time.Since(start)

	b.logger.Info("site built",
		zap.String("out", b.opts.OutputDir),
		zap.Int("articles", stats.Articles),
		zap.Int("hubs", stats.Hubs),
		zap.Int("assets", stats.Assets),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

func (b *Builder) homePage(articles []domain.Article, clusters []domain.ClusterSummary) *HomePage {
	recent := append([]domain.Article(nil), articles...)
	domain.SortByModified(recent)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	return &HomePage{Site: b.renderer.Site(), Clusters: clusters, Recent: recent}
}

// hubArticles orders a cluster for its hub page: pillars first
func hubArticles(articles []domain.Article) []domain.Article {
	domain.OrderForHub(articles)
	return articles
}

// writePage renders to <out>/<urlPath>/index.html
func (b *Builder) writePage(urlPath string, render func(io.Writer) error) error {
	dir := filepath.Join(b.opts.OutputDir, filepath.FromSlash(urlPath))
	if dir != filepath.Clean(b.opts.OutputDir) && !isWithin(dir, b.opts.OutputDir) {
		return fmt.Errorf("page %s resolves outside the output directory", urlPath)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", urlPath, err)
	}
	return f.Close()
}

func (b *Builder) writeSitemap(articles []domain.Article, clusters []domain.ClusterSummary) error {
	path := filepath.Join(b.opts.OutputDir, "sitemap.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sitemap: %w", err)
	}
	if err := WriteSitemap(f, b.renderer.Site().BaseURL, articles, clusters); err != nil {
		f.Close()
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return f.Close()
}

// copyStatic copies the static directory into the output root.
// A missing static directory is not an error.
func (b *Builder) copyStatic() (int, error) {
	if b.opts.StaticDir == "" {
		return 0, nil
	}
	if _, err := os.Stat(b.opts.StaticDir); errors.Is(err, fs.ErrNotExist) {
		b.logger.Debug("no static directory, skipping", zap.String("dir", b.opts.StaticDir))
		return 0, nil
	}

	count := 0
	err := filepath.WalkDir(b.opts.StaticDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.opts.StaticDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(b.opts.OutputDir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return count, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// checkOutputDir refuses output directories a clean would be destructive for
func (b *Builder) checkOutputDir() error {
	out, err := filepath.Abs(b.opts.OutputDir)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	if b.opts.OutputDir == "" || out == filepath.Dir(out) {
		return fmt.Errorf("refusing to use %q as output directory", b.opts.OutputDir)
	}

	content, err := filepath.Abs(b.repo.ContentDir())
	if err == nil && (out == content || isWithin(content, out)) {
		return fmt.Errorf("output directory %s must not contain the content directory", out)
	}
	if wd, err := os.Getwd(); err == nil && out == wd {
		return fmt.Errorf("output directory %s must not be the working directory", out)
	}
	return nil
}

// isWithin reports whether path is inside dir
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !filepath.IsAbs(rel) && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

// checkArticleSlugs fails on the first slug that is not safe as a URL path
func checkArticleSlugs(articles []domain.Article) error {
	for _, a := range articles {
		if !domain.IsValidSlug(a.Slug) {
			return &application.InvalidSlugError{Slug: a.Slug, Path: a.SourcePath}
		}
	}
	return nil
}

// checkClusterPaths fails when two cluster names slugify to the same hub path
func checkClusterPaths(clusters []domain.ClusterSummary) error {
	seen := make(map[string]string, len(clusters))
	for _, c := range clusters {
		if c.Slug == "" {
			return fmt.Errorf("cluster %q has no URL-safe characters", c.Name)
		}
		if prev, ok := seen[c.Slug]; ok {
			return fmt.Errorf("clusters %q and %q share hub path %s", prev, c.Name, c.Path())
		}
		seen[c.Slug] = c.Name
	}
	return nil
}
