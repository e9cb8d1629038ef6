package commands

import (
	"context"
	"sort"
	"strings"

	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// searchCandidateLimit caps how many rows the index returns before re-ranking
const searchCandidateLimit = 200

// SearchCommand searches articles with fuzzy ranking
type SearchCommand struct {
	repo  ports.ContentRepository
	index ports.ArticleIndex // optional, nil falls back to the repository
	Query string
}

// NewSearchCommand creates a new SearchCommand. index may be nil.
func NewSearchCommand(repo ports.ContentRepository, index ports.ArticleIndex, query string) *SearchCommand {
	return &SearchCommand{
		repo:  repo,
		index: index,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]domain.SearchResult, error) {
	query := strings.TrimSpace(c.Query)
	if len(query) < 2 {
		return nil, nil
	}

	var (
		results []domain.SearchResult
		err     error
	)
	if c.index != nil {
		results, err = c.index.Search(query, searchCandidateLimit)
	} else {
		results, err = c.repo.Search(query)
	}
	if err != nil {
		return nil, err
	}

	return FuzzySort(results, query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Exact substring match outranks any fuzzy match
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: query chars must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '-') {
				score += 10 // word boundary
			}
			score++
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores results against the query, drops non-matches and sorts
// by score descending. Ties keep slug order.
func FuzzySort(results []domain.SearchResult, query string) []domain.SearchResult {
	scored := make([]domain.SearchResult, 0, len(results))

	for _, r := range results {
		best := max(
			FuzzyScore(r.Slug, query),
			FuzzyScore(r.Title, query),
			FuzzyScore(r.MatchedText, query),
		)
		if best > 0 {
			r.Score = best
			scored = append(scored, r)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Slug < scored[j].Slug
	})

	return scored
}
