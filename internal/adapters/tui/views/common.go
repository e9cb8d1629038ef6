package views

import (
	"strings"

	"hvacguide/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// listPageSize returns how many rows fit below a header of headerLines
func (s *ViewState) listPageSize(headerLines int) int {
	if s.Height <= 0 {
		return 15
	}
	return max(s.Height-headerLines, 3)
}

// Navigation messages handled by the app
type (
	SwitchToHelpMsg struct{}
	BackMsg         struct{}
	QuitMsg         struct{}
	ReloadMsg       struct{}

	// OpenClusterMsg opens the article list of a cluster; an empty
	// Cluster lists every article
	OpenClusterMsg struct{ Cluster string }

	OpenArticleMsg struct{ Slug string }
	OpenEditorMsg  struct{ Path string }

	// OpenPageMsg opens a site-relative page in the web browser
	OpenPageMsg struct{ Path string }
)

// matchesFilter reports whether any field contains filter, ignoring case
func matchesFilter(filter string, fields ...string) bool {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), filter) {
			return true
		}
	}
	return false
}

func filterArticles(articles []domain.Article, filter string) []domain.Article {
	var out []domain.Article
	for _, a := range articles {
		if matchesFilter(filter, a.Title, a.Slug, a.Description) {
			out = append(out, a)
		}
	}
	return out
}
