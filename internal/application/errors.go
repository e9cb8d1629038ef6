package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidSlug   = errors.New("invalid slug")
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown article or cluster
type NotFoundError struct {
	Kind string // "article" or "cluster"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateSlugError reports two content files resolving to the same slug
type DuplicateSlugError struct {
	Slug       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("slug %q defined by both %s and %s", e.Slug, e.FirstPath, e.SecondPath)
}

func (e *DuplicateSlugError) Is(target error) bool {
	return target == ErrDuplicateSlug
}

// InvalidSlugError reports an article whose slug is not URL-safe
type InvalidSlugError struct {
	Slug string
	Path string
}

func (e *InvalidSlugError) Error() string {
	return fmt.Sprintf("slug %q of %s is not lowercase words joined by dashes", e.Slug, e.Path)
}

func (e *InvalidSlugError) Is(target error) bool {
	return target == ErrInvalidSlug
}
