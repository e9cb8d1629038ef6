package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"hvacguide/internal/adapters/tui/styles"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// copyToClipboard is swapped in tests
var copyToClipboard = clipboard.WriteAll

// ArticleOptions configures the article view
type ArticleOptions struct {
	RelatedLimit int
	BaseURL      string
	// GlamourStyle names a glamour standard style; empty detects the
	// terminal background
	GlamourStyle string
}

// ArticleModel shows one article body with its related articles below
type ArticleModel struct {
	ViewState
	repo     ports.ContentRepository
	opts     ArticleOptions
	article  *domain.Article
	related  []domain.Article
	viewport viewport.Model

	relatedFocus  bool
	relatedCursor int
	renderedWidth int
}

// NewArticleModel creates the article view
func NewArticleModel(repo ports.ContentRepository, opts ArticleOptions) *ArticleModel {
	return &ArticleModel{
		repo:     repo,
		opts:     opts,
		viewport: viewport.New(80, 20),
	}
}

// SetArticle loads an article and its related articles
func (m *ArticleModel) SetArticle(slug string) error {
	a, err := m.repo.GetArticleBySlug(slug)
	if err != nil {
		return err
	}
	m.article = a
	m.related = m.repo.GetRelatedArticles(slug, m.opts.RelatedLimit)
	m.relatedFocus = false
	m.relatedCursor = 0
	m.ClearMessage()
	if m.Width > 0 {
		m.resize()
	}
	m.renderBody()
	m.viewport.GotoTop()
	return nil
}

// Article returns the article being shown
func (m *ArticleModel) Article() *domain.Article {
	return m.article
}

// Link returns the absolute URL of the shown article
func (m *ArticleModel) Link() string {
	if m.article == nil {
		return ""
	}
	return strings.TrimSuffix(m.opts.BaseURL, "/") + m.article.Permalink()
}

// Init initializes the view
func (m *ArticleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the article view
func (m *ArticleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()
		switch {
		case key.Matches(msg, Keys.Back):
			if m.relatedFocus {
				m.relatedFocus = false
				return m, nil
			}
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, Keys.Related):
			if len(m.related) > 0 {
				m.relatedFocus = !m.relatedFocus
			}
			return m, nil
		case key.Matches(msg, Keys.Edit):
			if m.article != nil {
				path := m.article.SourcePath
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
			return m, nil
		case key.Matches(msg, Keys.Open):
			if m.article != nil {
				path := m.article.Permalink()
				return m, func() tea.Msg { return OpenPageMsg{Path: path} }
			}
			return m, nil
		case key.Matches(msg, Keys.Copy):
			m.copyLink()
			return m, nil
		case key.Matches(msg, Keys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, Keys.Quit):
			return m, func() tea.Msg { return QuitMsg{} }
		}

		if m.relatedFocus {
			switch {
			case key.Matches(msg, Keys.Up):
				if m.relatedCursor > 0 {
					m.relatedCursor--
				}
			case key.Matches(msg, Keys.Down):
				if m.relatedCursor < len(m.related)-1 {
					m.relatedCursor++
				}
			case key.Matches(msg, Keys.Enter):
				slug := m.related[m.relatedCursor].Slug
				return m, func() tea.Msg { return OpenArticleMsg{Slug: slug} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ArticleModel) copyLink() {
	link := m.Link()
	if link == "" {
		return
	}
	if err := copyToClipboard(link); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied "+link, false)
}

// relatedLines is the height of the related section including its heading
func (m *ArticleModel) relatedLines() int {
	if len(m.related) == 0 {
		return 0
	}
	return len(m.related) + 2
}

func (m *ArticleModel) resize() {
	width := max(m.Width-4, 20)
	// title, meta, blank, help, message and app padding
	height := max(m.Height-10-m.relatedLines(), 5)
	m.viewport.Width = width
	m.viewport.Height = height
	if width != m.renderedWidth {
		m.renderBody()
	}
}

func (m *ArticleModel) renderBody() {
	if m.article == nil {
		return
	}
	width := m.viewport.Width
	m.renderedWidth = width

	content, err := renderMarkdown(m.article.Body, width, m.opts.GlamourStyle)
	if err != nil {
		content = m.article.Body
	}
	m.viewport.SetContent(content)
}

func renderMarkdown(body string, width int, style string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(body)
}

// View renders the article view
func (m *ArticleModel) View() string {
	if m.article == nil {
		return NewViewBuilder().Muted("No article selected").String()
	}
	a := m.article

	meta := []string{styles.PriorityBadge(a.Priority)}
	if a.Cluster != "" {
		meta = append(meta, a.Cluster)
	}
	if a.Role != domain.RoleUnknown {
		meta = append(meta, a.Role.String())
	}
	meta = append(meta, fmt.Sprintf("%d min read", a.ReadingTime))
	if !a.Modified.IsZero() {
		meta = append(meta, "updated "+a.Modified.Format("2006-01-02"))
	}

	vb := NewViewBuilder().
		Title(a.Title).
		Line(RenderMuted(strings.Join(meta, " · "))).
		Line(m.viewport.View())

	if len(m.related) > 0 {
		vb.Line(styles.InputLabel.Render("Related"))
		for i, r := range m.related {
			vb.Line(RenderRow(r.Title, m.relatedFocus && i == m.relatedCursor))
		}
	}

	vb.BlankLine().Message(m.Message, m.MessageErr)
	if m.relatedFocus {
		vb.Help(Keys.Up, Keys.Down, Keys.Enter, Keys.Back)
	} else {
		vb.Help(Keys.Up, Keys.Down, Keys.Related, Keys.Edit, Keys.Copy, Keys.Open, Keys.Back)
	}
	return vb.String()
}
