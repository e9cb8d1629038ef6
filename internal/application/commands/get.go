package commands

import (
	"context"

	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// ArticleView is an article together with its related articles
type ArticleView struct {
	Article *domain.Article
	Related []domain.Article
}

// GetArticleCommand loads one article and its related articles
type GetArticleCommand struct {
	repo         ports.ContentRepository
	Slug         string
	RelatedLimit int
}

// NewGetArticleCommand creates a new GetArticleCommand
func NewGetArticleCommand(repo ports.ContentRepository, slug string, relatedLimit int) *GetArticleCommand {
	return &GetArticleCommand{
		repo:         repo,
		Slug:         slug,
		RelatedLimit: relatedLimit,
	}
}

// Execute runs the get article command. Unknown slugs return an error
// matching application.ErrNotFound.
func (c *GetArticleCommand) Execute(ctx context.Context) (*ArticleView, error) {
	if err := application.ValidateRequired("slug", c.Slug); err != nil {
		return nil, err
	}

	article, err := c.repo.GetArticleBySlug(c.Slug)
	if err != nil {
		return nil, err
	}

	return &ArticleView{
		Article: article,
		Related: c.repo.GetRelatedArticles(c.Slug, c.RelatedLimit),
	}, nil
}

// RelatedArticlesCommand lists the related articles of a slug
type RelatedArticlesCommand struct {
	repo  ports.ContentRepository
	Slug  string
	Limit int
}

// NewRelatedArticlesCommand creates a new RelatedArticlesCommand
func NewRelatedArticlesCommand(repo ports.ContentRepository, slug string, limit int) *RelatedArticlesCommand {
	return &RelatedArticlesCommand{
		repo:  repo,
		Slug:  slug,
		Limit: limit,
	}
}

// Execute runs the related articles command. An unknown slug yields an empty list.
func (c *RelatedArticlesCommand) Execute(ctx context.Context) ([]domain.Article, error) {
	return c.repo.GetRelatedArticles(c.Slug, c.Limit), nil
}
