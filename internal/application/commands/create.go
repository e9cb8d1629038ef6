package commands

import (
	"context"
	"fmt"
	"time"

	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// CreateArticleResult contains the result of creating an article
type CreateArticleResult struct {
	Article *domain.Article
	Message string
}

// CreateArticleCommand writes a new content file with front-matter
type CreateArticleCommand struct {
	repo        ports.ContentRepository
	Slug        string
	Title       string
	Description string
	Cluster     string
	Role        string
	Priority    string

	now func() time.Time
}

// NewCreateArticleCommand creates a new CreateArticleCommand
func NewCreateArticleCommand(repo ports.ContentRepository, slug, title, cluster string) *CreateArticleCommand {
	return &CreateArticleCommand{
		repo:    repo,
		Slug:    slug,
		Title:   title,
		Cluster: cluster,
		now:     time.Now,
	}
}

// Validate checks if the create operation is valid
func (c *CreateArticleCommand) Validate() error {
	if err := application.ValidateSlug(c.Slug); err != nil {
		return err
	}
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if err := application.ValidateRequired("cluster", c.Cluster); err != nil {
		return err
	}

	if c.Role != "" && domain.ParseRole(c.Role) == domain.RoleUnknown {
		return &application.ValidationError{
			Field:   "role",
			Message: fmt.Sprintf("expected pillar, hub or spoke, got: %s", c.Role),
		}
	}

	if c.Priority != "" && domain.ParsePriority(c.Priority) == domain.PriorityUnknown {
		return &application.ValidationError{
			Field:   "priority",
			Message: fmt.Sprintf("expected P1, P2 or P3, got: %s", c.Priority),
		}
	}

	return nil
}

// Execute runs the create article command
func (c *CreateArticleCommand) Execute(ctx context.Context) (*CreateArticleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.repo.GetArticleBySlug(c.Slug); err == nil {
		return nil, fmt.Errorf("article %s: %w", c.Slug, application.ErrAlreadyExists)
	}

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	fm := domain.NewFrontMatter(c.Title, c.Description, c.Cluster,
		domain.ParseRole(c.Role), domain.ParsePriority(c.Priority), now())
	body := domain.ArticleBodyTemplate(c.Title, c.Description)

	article, err := c.repo.CreateArticle(fm, c.Slug, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	return &CreateArticleResult{
		Article: article,
		Message: fmt.Sprintf("Created article: %s (%s)", article.Slug, article.SourcePath),
	}, nil
}
