package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hvacguide/internal/application"
)

func TestCreateArticleCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		title    string
		cluster  string
		role     string
		priority string
		wantErr  bool
		errMsg   string
	}{
		{
			name:    "valid article",
			slug:    "mini-split-sizing",
			title:   "Mini Split Sizing",
			cluster: "mini-splits",
		},
		{
			name:     "valid with role and priority",
			slug:     "mini-split-sizing",
			title:    "Mini Split Sizing",
			cluster:  "mini-splits",
			role:     "pillar",
			priority: "p1",
		},
		{
			name:    "empty slug",
			title:   "Mini Split Sizing",
			cluster: "mini-splits",
			wantErr: true,
			errMsg:  "slug is required",
		},
		{
			name:    "bad slug",
			slug:    "Mini Split",
			title:   "Mini Split Sizing",
			cluster: "mini-splits",
			wantErr: true,
			errMsg:  "lowercase",
		},
		{
			name:    "empty title",
			slug:    "mini-split-sizing",
			cluster: "mini-splits",
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "empty cluster",
			slug:    "mini-split-sizing",
			title:   "Mini Split Sizing",
			wantErr: true,
			errMsg:  "cluster is required",
		},
		{
			name:    "unknown role",
			slug:    "mini-split-sizing",
			title:   "Mini Split Sizing",
			cluster: "mini-splits",
			role:    "leaf",
			wantErr: true,
			errMsg:  "expected pillar, hub or spoke",
		},
		{
			name:     "unknown priority",
			slug:     "mini-split-sizing",
			title:    "Mini Split Sizing",
			cluster:  "mini-splits",
			priority: "P9",
			wantErr:  true,
			errMsg:   "expected P1, P2 or P3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateArticleCommand{
				Slug:     tt.slug,
				Title:    tt.title,
				Cluster:  tt.cluster,
				Role:     tt.role,
				Priority: tt.priority,
			}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateArticleCommand_Execute(t *testing.T) {
	repo := newFakeRepo(sampleArticles()...)

	cmd := NewCreateArticleCommand(repo, "duct-sealing", "Duct Sealing", "ducts")
	cmd.Priority = "P2"
	cmd.now = func() time.Time { return time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC) }

	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Article.Slug != "duct-sealing" {
		t.Errorf("expected slug duct-sealing, got %s", result.Article.Slug)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created article, got %d", len(repo.created))
	}
	fm := repo.created[0]
	if fm.DatePublished != "2024-09-01" || fm.Priority != "P2" || fm.Role != "" {
		t.Errorf("unexpected front-matter: %+v", fm)
	}
}

func TestCreateArticleCommand_ExistingSlug(t *testing.T) {
	repo := newFakeRepo(sampleArticles()...)

	_, err := NewCreateArticleCommand(repo, "a", "Again", "x").Execute(context.Background())
	if !errors.Is(err, application.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Error("nothing should be written for an existing slug")
	}
}
