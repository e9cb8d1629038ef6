package commands

import (
	"context"
	"strings"

	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// fakeRepo is an in-memory ports.ContentRepository
type fakeRepo struct {
	articles []domain.Article
	created  []domain.FrontMatter
}

var _ ports.ContentRepository = (*fakeRepo)(nil)

func newFakeRepo(articles ...domain.Article) *fakeRepo {
	domain.SortArticlesBySlug(articles)
	return &fakeRepo{articles: articles}
}

func (r *fakeRepo) Load(ctx context.Context) error { return nil }

func (r *fakeRepo) GetAllArticles() []domain.Article {
	return append([]domain.Article(nil), r.articles...)
}

func (r *fakeRepo) GetAllSlugs() []string {
	var out []string
	for _, a := range r.articles {
		out = append(out, a.Slug)
	}
	return out
}

func (r *fakeRepo) GetArticleBySlug(slug string) (*domain.Article, error) {
	for i := range r.articles {
		if r.articles[i].Slug == slug {
			a := r.articles[i]
			return &a, nil
		}
	}
	return nil, &application.NotFoundError{Kind: "article", Key: slug}
}

func (r *fakeRepo) GetArticlesByCluster(cluster string) []domain.Article {
	return domain.FilterByCluster(r.articles, cluster)
}

func (r *fakeRepo) GetRelatedArticles(slug string, limit int) []domain.Article {
	return domain.SelectRelated(r.articles, slug, limit)
}

func (r *fakeRepo) ListClusters() []domain.ClusterSummary {
	return domain.SummarizeClusters(r.articles)
}

func (r *fakeRepo) Search(query string) ([]domain.SearchResult, error) {
	var out []domain.SearchResult
	for _, a := range r.articles {
		if strings.Contains(strings.ToLower(a.Title), strings.ToLower(query)) {
			out = append(out, domain.SearchResult{Slug: a.Slug, Title: a.Title, Cluster: a.Cluster, MatchedText: a.Title})
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateArticle(fm domain.FrontMatter, slug, body string) (*domain.Article, error) {
	r.created = append(r.created, fm)
	a := domain.ParseArticle(fm, body, "content/"+slug+".md", slug, domain.ParseOptions{})
	r.articles = append(r.articles, a)
	return &a, nil
}

func (r *fakeRepo) ContentDir() string { return "content" }

// fakeIndex is an in-memory ports.ArticleIndex
type fakeIndex struct {
	needsRebuild bool
	fullSyncs    int
	incSyncs     int
	results      []domain.SearchResult
}

var _ ports.ArticleIndex = (*fakeIndex)(nil)

func (i *fakeIndex) Open(string) error      { return nil }
func (i *fakeIndex) Close() error           { return nil }
func (i *fakeIndex) NeedsFullRebuild() bool { return i.needsRebuild }

func (i *fakeIndex) SyncFull(articles []domain.Article) (*domain.SyncStats, error) {
	i.fullSyncs++
	i.needsRebuild = false
	return &domain.SyncStats{Added: len(articles), Scanned: len(articles)}, nil
}

func (i *fakeIndex) SyncIncremental(articles []domain.Article) (*domain.SyncStats, error) {
	i.incSyncs++
	return &domain.SyncStats{Scanned: len(articles)}, nil
}

func (i *fakeIndex) Search(query string, limit int) ([]domain.SearchResult, error) {
	return i.results, nil
}

func (i *fakeIndex) CountByCluster() (map[string]int, error) { return nil, nil }

func sampleArticles() []domain.Article {
	return []domain.Article{
		{Slug: "a", Title: "Attic Ventilation", Cluster: "x", Priority: domain.PriorityP2, Description: "d"},
		{Slug: "b", Title: "Blower Motors", Cluster: "x", Priority: domain.PriorityP1},
		{Slug: "c", Title: "Condensate Pumps", Cluster: "y", Priority: domain.PriorityP1},
	}
}
