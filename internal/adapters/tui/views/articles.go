package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hvacguide/internal/adapters/tui/styles"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

const articleHeaderLines = 9

// ArticleListModel lists the articles of one cluster, or every article
type ArticleListModel struct {
	ViewState
	repo      ports.ContentRepository
	cluster   string
	articles  []domain.Article
	visible   []domain.Article
	filter    listFilter
	paginator *Paginator
}

// NewArticleListModel creates the article list view
func NewArticleListModel(repo ports.ContentRepository) *ArticleListModel {
	return &ArticleListModel{
		repo:      repo,
		filter:    newListFilter(),
		paginator: NewPaginator(15),
	}
}

// SetCluster switches the list to a cluster and resets cursor and filter.
// An empty cluster lists every article by slug.
func (m *ArticleListModel) SetCluster(cluster string) {
	m.cluster = cluster
	m.filter = newListFilter()
	m.paginator.Reset()
	m.ClearMessage()
	m.Refresh()
}

// Cluster returns the cluster being listed
func (m *ArticleListModel) Cluster() string {
	return m.cluster
}

// Refresh re-reads the articles from the repository
func (m *ArticleListModel) Refresh() {
	if m.cluster == "" {
		m.articles = m.repo.GetAllArticles()
	} else {
		m.articles = m.repo.GetArticlesByCluster(m.cluster)
	}
	m.applyFilter()
}

func (m *ArticleListModel) applyFilter() {
	m.visible = filterArticles(m.articles, m.filter.Value())
	m.paginator.SetTotal(len(m.visible))
}

// Selected returns the article under the cursor, or nil for an empty list
func (m *ArticleListModel) Selected() *domain.Article {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.visible) {
		return nil
	}
	return &m.visible[i]
}

// Init initializes the view
func (m *ArticleListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the article list
func (m *ArticleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(m.listPageSize(articleHeaderLines))
		return m, nil

	case tea.KeyMsg:
		if m.filter.active {
			changed, cmd := m.filter.Update(msg)
			if changed {
				m.paginator.SetCursor(0)
				m.applyFilter()
			}
			return m, cmd
		}

		m.ClearMessage()
		switch {
		case key.Matches(msg, Keys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, Keys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, Keys.NextPg):
			m.paginator.NextPage()
		case key.Matches(msg, Keys.PrevPg):
			m.paginator.PrevPage()
		case key.Matches(msg, Keys.Filter):
			return m, m.filter.Start()
		case key.Matches(msg, Keys.Enter):
			if a := m.Selected(); a != nil {
				slug := a.Slug
				return m, func() tea.Msg { return OpenArticleMsg{Slug: slug} }
			}
		case key.Matches(msg, Keys.Edit):
			if a := m.Selected(); a != nil {
				path := a.SourcePath
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
		case key.Matches(msg, Keys.Back):
			return m, func() tea.Msg { return BackMsg{} }
		case key.Matches(msg, Keys.Reload):
			return m, func() tea.Msg { return ReloadMsg{} }
		case key.Matches(msg, Keys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		case key.Matches(msg, Keys.Quit):
			return m, func() tea.Msg { return QuitMsg{} }
		}
	}
	return m, nil
}

// View renders the article list
func (m *ArticleListModel) View() string {
	title := "All articles"
	if m.cluster != "" {
		title = m.cluster
	}

	subtitle := fmt.Sprintf("%d articles", len(m.articles))
	if len(m.visible) != len(m.articles) {
		subtitle = fmt.Sprintf("%d of %d articles", len(m.visible), len(m.articles))
	}

	vb := NewViewBuilder().Title(title).Subtitle(subtitle)
	if f := m.filter.View(); f != "" {
		vb.Line(f)
	}
	vb.BlankLine()

	if len(m.visible) == 0 {
		vb.Muted("No articles")
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		vb.Line(RenderRow(m.articleRow(&m.visible[i]), i == m.paginator.Cursor()))
	}

	if m.paginator.TotalPages() > 1 {
		vb.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}

	vb.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(Keys.Up, Keys.Down, Keys.Enter, Keys.Edit, Keys.Filter, Keys.Reload, Keys.Back)

	return vb.String()
}

func (m *ArticleListModel) articleRow(a *domain.Article) string {
	title := a.Title
	if a.Role == domain.RolePillar {
		title = styles.Pillar.Render(title)
	}
	row := fmt.Sprintf("%s  %s", styles.PriorityBadge(a.Priority), title)
	if m.cluster == "" && a.Cluster != "" {
		row += "  " + RenderMuted("["+a.Cluster+"]")
	}
	return row
}
