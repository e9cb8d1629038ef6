package application

import (
	"fmt"
	"strings"

	"hvacguide/internal/domain"
)

// Severity grades a content issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in an article's metadata
type Issue struct {
	Slug     string
	Path     string
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s [%s] %s: %s", i.Severity, i.Slug, i.Path, i.Field, i.Message)
}

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", fieldName),
		}
	}
	return nil
}

// ValidateSlug checks that a slug is lowercase words joined by dashes
func ValidateSlug(slug string) error {
	if err := ValidateRequired("slug", slug); err != nil {
		return err
	}
	if !domain.IsValidSlug(slug) {
		return &ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("%q must be lowercase letters and digits separated by single dashes", slug),
		}
	}
	return nil
}

// ValidateArticle lists the metadata problems of a loaded article.
// Missing title, description or cluster are errors; a title derived from the
// slug does not count as present.
func ValidateArticle(a domain.Article) []Issue {
	var issues []Issue
	add := func(field, msg string, sev Severity) {
		issues = append(issues, Issue{
			Slug:     a.Slug,
			Path:     a.SourcePath,
			Field:    field,
			Message:  msg,
			Severity: sev,
		})
	}

	if !domain.IsValidSlug(a.Slug) {
		add("slug", "not a lowercase dash-separated slug", SeverityError)
	}
	if a.Title == "" || a.TitleDerived {
		add("title", "title is missing", SeverityError)
	}
	if a.Description == "" {
		add("description", "description is missing", SeverityError)
	}
	if a.Cluster == "" {
		add("cluster", "cluster is missing", SeverityError)
	}
	if a.Role == domain.RoleUnknown {
		add("role", "role should be pillar, hub or spoke", SeverityWarning)
	}
	if a.Priority == domain.PriorityUnknown {
		add("priority", "priority should be P1, P2 or P3", SeverityWarning)
	}
	for _, key := range a.InvalidDates {
		add(key, "date could not be parsed", SeverityWarning)
	}
	if a.DatePublished.IsZero() && !contains(a.InvalidDates, "datePublished") {
		add("datePublished", "publish date is missing", SeverityWarning)
	}

	return issues
}

// HasErrors reports whether any issue has error severity
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
