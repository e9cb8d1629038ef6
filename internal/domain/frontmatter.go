package domain

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FrontMatter is the key/value block at the top of a content file.
// Dates stay strings here so a bad value never aborts decoding.
type FrontMatter struct {
	Slug          string   `yaml:"slug,omitempty"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Cluster       string   `yaml:"cluster"`
	Role          string   `yaml:"role,omitempty"`
	Priority      string   `yaml:"priority,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	DatePublished string   `yaml:"datePublished,omitempty"`
	PublishedAt   string   `yaml:"publishedAt,omitempty"`
	Date          string   `yaml:"date,omitempty"`
	UpdatedAt     string   `yaml:"updatedAt,omitempty"`
	DateModified  string   `yaml:"dateModified,omitempty"`
}

// PublishedValue returns the first non-empty publish date key
func (fm FrontMatter) PublishedValue() string {
	for _, v := range []string{fm.DatePublished, fm.PublishedAt, fm.Date} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a front-matter date in any accepted layout.
// The boolean is false for a non-empty value no layout accepts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TitleFromSlug builds a fallback title ("heat-pump-sizing" -> "Heat Pump Sizing")
func TitleFromSlug(slug string) string {
	words := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(words)
}

// ParseOptions tunes article derivation
type ParseOptions struct {
	WordsPerMinute int
}

// ParseArticle builds an Article from decoded front-matter, the markdown body
// and the file it came from. fallbackSlug is used when front-matter has no slug.
// Unparseable dates are left zero and their keys recorded in InvalidDates.
func ParseArticle(fm FrontMatter, body, sourcePath, fallbackSlug string, opts ParseOptions) Article {
	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = fallbackSlug
	}

	title := strings.TrimSpace(fm.Title)
	derived := title == ""
	if derived {
		title = TitleFromSlug(slug)
	}

	var invalid []string
	parse := func(key, value string) time.Time {
		t, ok := ParseDate(value)
		if !ok {
			invalid = append(invalid, key)
		}
		return t
	}
	published := parse("datePublished", fm.PublishedValue())
	updated := parse("updatedAt", fm.UpdatedAt)
	modified := parse("dateModified", fm.DateModified)

	words := CountWords(body)

	return Article{
		Slug:          slug,
		Title:         title,
		TitleDerived:  derived,
		Description:   strings.TrimSpace(fm.Description),
		Cluster:       strings.TrimSpace(fm.Cluster),
		Role:          ParseRole(fm.Role),
		Priority:      ParsePriority(fm.Priority),
		Tags:          fm.Tags,
		DatePublished: published,
		DateUpdated:   updated,
		DateModified:  modified,
		Modified:      ResolveModified(modified, updated, published),
		InvalidDates:  invalid,
		Body:          body,
		WordCount:     words,
		ReadingTime:   ReadingTime(words, opts.WordsPerMinute),
		SourcePath:    sourcePath,
	}
}

// NewFrontMatter returns front-matter for a freshly created article
func NewFrontMatter(title, description, cluster string, role Role, priority Priority, now time.Time) FrontMatter {
	fm := FrontMatter{
		Title:         title,
		Description:   description,
		Cluster:       cluster,
		DatePublished: now.Format("2006-01-02"),
	}
	if role != RoleUnknown {
		fm.Role = role.String()
	}
	if priority != PriorityUnknown {
		fm.Priority = priority.String()
	}
	return fm
}

// ArticleBodyTemplate returns the starter markdown body for a new article
func ArticleBodyTemplate(title, description string) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	if description != "" {
		b.WriteString(strings.TrimSuffix(description, "."))
		b.WriteString(".\n")
	} else {
		b.WriteString("Draft pending.\n")
	}
	return b.String()
}
