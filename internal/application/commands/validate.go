package commands

import (
	"context"

	"hvacguide/internal/application"
	"hvacguide/internal/ports"
)

// ValidateContentCommand checks the metadata of every loaded article
type ValidateContentCommand struct {
	repo ports.ContentRepository
}

// NewValidateContentCommand creates a new ValidateContentCommand
func NewValidateContentCommand(repo ports.ContentRepository) *ValidateContentCommand {
	return &ValidateContentCommand{repo: repo}
}

// Execute returns every issue found, grouped by article in slug order
func (c *ValidateContentCommand) Execute(ctx context.Context) ([]application.Issue, error) {
	var issues []application.Issue
	for _, a := range c.repo.GetAllArticles() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issues = append(issues, application.ValidateArticle(a)...)
	}
	return issues, nil
}
