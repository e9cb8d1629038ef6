package domain

import (
	"slices"
	"strings"
	"time"
)

// Article is a single piece of site content parsed from a markdown file
type Article struct {
	Slug         string
	Title        string
	TitleDerived bool // Title was built from the slug
	Description  string
	Cluster      string
	Role         Role
	Priority     Priority
	Tags         []string

	DatePublished time.Time
	DateUpdated   time.Time
	DateModified  time.Time // Raw dateModified from front-matter, may be zero
	Modified      time.Time // Resolved modification date, see ResolveModified
	InvalidDates  []string  // Front-matter date keys that failed to parse

	Body        string
	WordCount   int
	ReadingTime int // Minutes
	SourcePath  string
	FileModTime time.Time // mtime of SourcePath when the article was read
}

// Permalink returns the site-relative URL of the article (e.g., "/heat-pump-sizing/")
func (a *Article) Permalink() string {
	return "/" + a.Slug + "/"
}

// ClusterSummary describes one topic cluster for hub pages
type ClusterSummary struct {
	Name   string
	Slug   string // URL-safe form of Name
	Count  int
	Pillar *Article // First pillar article in the cluster, nil if none
}

// ClusterPathPrefix is the site-relative prefix of hub pages
const ClusterPathPrefix = "/topics/"

// Path returns the site-relative URL of the cluster hub (e.g., "/topics/heat-pumps/")
func (c ClusterSummary) Path() string {
	return ClusterPathPrefix + c.Slug + "/"
}

// SyncStats holds statistics from a search index sync
type SyncStats struct {
	Added    int
	Updated  int
	Deleted  int
	Scanned  int
	Duration time.Duration
}

// SearchResult represents a search match
type SearchResult struct {
	Slug        string
	Title       string
	Cluster     string
	MatchedText string
	Score       int
}

// DefaultWordsPerMinute is the reading speed used when none is configured
const DefaultWordsPerMinute = 200

// ReadingTime estimates minutes to read body at wpm words per minute.
// Any non-empty body takes at least one minute.
func ReadingTime(words, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	if words <= 0 {
		return 1
	}
	return (words + wpm - 1) / wpm
}

// CountWords returns the number of whitespace separated words in body
func CountWords(body string) int {
	return len(strings.Fields(body))
}

// ResolveModified picks the modification date: dateModified, then updatedAt,
// then datePublished. Returns the zero time when all are missing.
func ResolveModified(modified, updated, published time.Time) time.Time {
	switch {
	case !modified.IsZero():
		return modified
	case !updated.IsZero():
		return updated
	default:
		return published
	}
}

// SortArticlesBySlug sorts articles by slug in ascending order
func SortArticlesBySlug(articles []Article) {
	slices.SortFunc(articles, func(a, b Article) int {
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortByPriority stable-sorts articles by priority rank, keeping the
// existing order between articles of the same rank
func SortByPriority(articles []Article) {
	slices.SortStableFunc(articles, func(a, b Article) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
}

// SortByModified sorts articles newest first; articles without a date go last
func SortByModified(articles []Article) {
	slices.SortStableFunc(articles, func(a, b Article) int {
		switch {
		case a.Modified.IsZero() && b.Modified.IsZero():
			return 0
		case a.Modified.IsZero():
			return 1
		case b.Modified.IsZero():
			return -1
		}
		return b.Modified.Compare(a.Modified)
	})
}
