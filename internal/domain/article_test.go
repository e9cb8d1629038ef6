package domain

import (
	"testing"
	"time"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words    int
		wpm      int
		expected int
	}{
		{0, 200, 1},
		{1, 200, 1},
		{200, 200, 1},
		{201, 200, 2},
		{1000, 200, 5},
		{1000, 0, 5}, // falls back to default speed
		{450, 150, 3},
	}

	for _, tt := range tests {
		if got := ReadingTime(tt.words, tt.wpm); got != tt.expected {
			t.Errorf("ReadingTime(%d, %d) = %d, expected %d", tt.words, tt.wpm, got, tt.expected)
		}
	}
}

func TestResolveModified(t *testing.T) {
	published := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	modified := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var zero time.Time

	tests := []struct {
		name                         string
		modified, updated, published time.Time
		expected                     time.Time
	}{
		{"modified wins", modified, updated, published, modified},
		{"falls back to updated", zero, updated, published, updated},
		{"falls back to published", zero, zero, published, published},
		{"all missing", zero, zero, zero, zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveModified(tt.modified, tt.updated, tt.published)
			if !got.Equal(tt.expected) {
				t.Errorf("ResolveModified() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		ok     bool
		isZero bool
	}{
		{"", true, true},
		{"2024-05-01", true, false},
		{"2024-05-01T10:00:00Z", true, false},
		{"2024-05-01T10:00:00", true, false},
		{"2024-05-01 10:00:00", true, false},
		{"May 1st", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			if ok != tt.ok {
				t.Errorf("ParseDate(%q) ok = %v, expected %v", tt.in, ok, tt.ok)
			}
			if got.IsZero() != tt.isZero {
				t.Errorf("ParseDate(%q) zero = %v, expected %v", tt.in, got.IsZero(), tt.isZero)
			}
		})
	}
}

func TestParseArticle(t *testing.T) {
	fm := FrontMatter{
		Title:         "Sizing a Heat Pump",
		Description:   "How many BTU you need.",
		Cluster:       "heat-pumps",
		Role:          "Pillar",
		Priority:      "p1",
		DatePublished: "2024-01-10",
		UpdatedAt:     "2024-02-01",
	}
	body := "word word word"

	a := ParseArticle(fm, body, "content/heat-pump-sizing.md", "heat-pump-sizing", ParseOptions{WordsPerMinute: 200})

	if a.Slug != "heat-pump-sizing" {
		t.Errorf("expected fallback slug, got %q", a.Slug)
	}
	if a.Role != RolePillar {
		t.Errorf("expected pillar role, got %v", a.Role)
	}
	if a.Priority != PriorityP1 {
		t.Errorf("expected P1, got %v", a.Priority)
	}
	if a.WordCount != 3 || a.ReadingTime != 1 {
		t.Errorf("unexpected word count %d / reading time %d", a.WordCount, a.ReadingTime)
	}
	if want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC); !a.Modified.Equal(want) {
		t.Errorf("expected modified %v, got %v", want, a.Modified)
	}
	if len(a.InvalidDates) != 0 {
		t.Errorf("expected no invalid dates, got %v", a.InvalidDates)
	}
}

func TestParseArticle_Fallbacks(t *testing.T) {
	fm := FrontMatter{
		Slug:         "custom-slug",
		PublishedAt:  "2023-12-01",
		DateModified: "yesterday",
	}

	a := ParseArticle(fm, "", "content/whatever.md", "whatever", ParseOptions{})

	if a.Slug != "custom-slug" {
		t.Errorf("front-matter slug should win, got %q", a.Slug)
	}
	if a.Title != "Custom Slug" {
		t.Errorf("expected title from slug, got %q", a.Title)
	}
	if a.DatePublished.IsZero() {
		t.Error("publishedAt alias was not used")
	}
	if !a.Modified.Equal(a.DatePublished) {
		t.Errorf("expected modified to fall back to published, got %v", a.Modified)
	}
	if len(a.InvalidDates) != 1 || a.InvalidDates[0] != "dateModified" {
		t.Errorf("expected dateModified reported invalid, got %v", a.InvalidDates)
	}
	if a.ReadingTime != 1 {
		t.Errorf("expected minimum reading time 1, got %d", a.ReadingTime)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in       string
		expected Priority
		rank     int
	}{
		{"P1", PriorityP1, 1},
		{"p2", PriorityP2, 2},
		{" P3 ", PriorityP3, 3},
		{"P4", PriorityUnknown, 4},
		{"", PriorityUnknown, 4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := ParsePriority(tt.in)
			if p != tt.expected {
				t.Errorf("ParsePriority(%q) = %v, expected %v", tt.in, p, tt.expected)
			}
			if p.Rank() != tt.rank {
				t.Errorf("%v.Rank() = %d, expected %d", p, p.Rank(), tt.rank)
			}
		})
	}
}

func TestPriorityString(t *testing.T) {
	for p, want := range map[Priority]string{
		PriorityP1:      "P1",
		PriorityP2:      "P2",
		PriorityP3:      "P3",
		PriorityUnknown: "--",
	} {
		if got := p.String(); got != want {
			t.Errorf("Priority(%d).String() = %q, expected %q", int(p), got, want)
		}
	}
}

func TestSlugs(t *testing.T) {
	valid := []string{"a", "heat-pump-sizing", "seer2-ratings", "r410a"}
	invalid := []string{"", "Heat-Pump", "double--dash", "-lead", "trail-", "under_score", "spa ce"}

	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, expected true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, expected false", s)
		}
	}

	if got := Slugify("Heat Pumps & Furnaces"); got != "heat-pumps-furnaces" {
		t.Errorf("Slugify() = %q", got)
	}
}

func TestSortByModified(t *testing.T) {
	articles := []Article{
		{Slug: "undated"},
		{Slug: "old", Modified: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "new", Modified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	SortByModified(articles)

	if got := slugs(articles); !equalStrings(got, []string{"new", "old", "undated"}) {
		t.Errorf("SortByModified = %v", got)
	}
}
