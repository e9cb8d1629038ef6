package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hvacguide/internal/adapters/tui/styles"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

// clusterHeaderLines is the space taken by title, filter, footer and help
const clusterHeaderLines = 9

// ClusterListModel lists topic clusters with an "All articles" entry on top
type ClusterListModel struct {
	ViewState
	repo      ports.ContentRepository
	clusters  []domain.ClusterSummary
	visible   []domain.ClusterSummary
	total     int
	filter    listFilter
	paginator *Paginator
}

// NewClusterListModel creates the cluster list view
func NewClusterListModel(repo ports.ContentRepository) *ClusterListModel {
	m := &ClusterListModel{
		repo:      repo,
		filter:    newListFilter(),
		paginator: NewPaginator(15),
	}
	m.Refresh()
	return m
}

// Refresh re-reads clusters from the repository, keeping the cursor
func (m *ClusterListModel) Refresh() {
	m.clusters = m.repo.ListClusters()
	m.total = len(m.repo.GetAllSlugs())
	m.applyFilter()
}

func (m *ClusterListModel) applyFilter() {
	m.visible = m.visible[:0]
	for _, c := range m.clusters {
		if matchesFilter(m.filter.Value(), c.Name, c.Slug) {
			m.visible = append(m.visible, c)
		}
	}
	// +1 for the "All articles" row
	m.paginator.SetTotal(len(m.visible) + 1)
}

// Selected returns the cluster name under the cursor; empty means all articles
func (m *ClusterListModel) Selected() string {
	i := m.paginator.Cursor()
	if i == 0 || i > len(m.visible) {
		return ""
	}
	return m.visible[i-1].Name
}

// Init initializes the view
func (m *ClusterListModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the cluster list
func (m *ClusterListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(m.listPageSize(clusterHeaderLines))
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
			cluster := m.Selected()
			return m, func() tea.Msg { return OpenClusterMsg{Cluster: cluster} }
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

// View renders the cluster list
func (m *ClusterListModel) View() string {
	vb := NewViewBuilder().
		Title("HVAC Guide").
		Subtitle(fmt.Sprintf("%d articles in %d clusters", m.total, len(m.clusters)))

	if f := m.filter.View(); f != "" {
		vb.Line(f)
	}
	vb.BlankLine()

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		selected := i == m.paginator.Cursor()
		if i == 0 {
			vb.Line(RenderRow(fmt.Sprintf("All articles (%d)", m.total), selected))
			continue
		}
		vb.Line(RenderRow(m.clusterRow(m.visible[i-1]), selected))
	}

	if m.paginator.TotalPages() > 1 {
		vb.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}

	vb.BlankLine().
		Message(m.Message, m.MessageErr).
		Help(Keys.Up, Keys.Down, Keys.Enter, Keys.Filter, Keys.Reload, Keys.Help, Keys.Quit)

	return vb.String()
}

func (m *ClusterListModel) clusterRow(c domain.ClusterSummary) string {
	pillar := RenderMuted("no pillar")
	if c.Pillar != nil {
		pillar = styles.Pillar.Render(c.Pillar.Title)
	}
	return fmt.Sprintf("%-28s %3d  %s", c.Name, c.Count, pillar)
}
