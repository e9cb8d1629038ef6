package views

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"hvacguide/internal/adapters/filesystem"
)

func writeContent(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func loadTestRepo(t *testing.T) *filesystem.Repository {
	t.Helper()
	dir := t.TempDir()
	writeContent(t, dir, "hp-guide.md", "---\ntitle: Heat Pump Guide\ncluster: Heat Pumps\nrole: pillar\npriority: P1\n---\n\n# Heat pumps\n\nEverything about heat pumps.\n")
	writeContent(t, dir, "hp-sizing.md", "---\ntitle: Sizing a Heat Pump\ncluster: Heat Pumps\nrole: spoke\npriority: P2\n---\n\nSizing body.\n")
	writeContent(t, dir, "hp-noise.md", "---\ntitle: Heat Pump Noise\ncluster: Heat Pumps\nrole: spoke\npriority: P3\n---\n\nNoise body.\n")
	writeContent(t, dir, "filter-merv.md", "---\ntitle: MERV Ratings\ncluster: Air Quality\npriority: P2\n---\n\nFilters.\n")

	repo := filesystem.NewRepository(dir, filesystem.Options{WordsPerMinute: 200})
	if err := repo.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	return repo
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and returns its message, or nil
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if p.TotalPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPages())
	}
	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("expected cursor 4 on page 2, got %d on %d", p.Cursor(), p.CurrentPage())
	}
	if start, end := p.VisibleRange(); start != 3 || end != 6 {
		t.Errorf("expected range 3-6, got %d-%d", start, end)
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("expected next page to move cursor to 6, got %d", p.Cursor())
	}
	if p.NextPage() {
		t.Error("expected no page after the last")
	}

	p.SetTotal(2)
	if p.Cursor() != 1 || p.CurrentPage() != 1 {
		t.Errorf("expected cursor clamped to 1 on page 1, got %d on %d", p.Cursor(), p.CurrentPage())
	}

	p.SetPageSize(1)
	if p.CurrentPage() != 2 {
		t.Errorf("expected cursor kept visible after resize, page %d", p.CurrentPage())
	}
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		filter string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"  ", []string{"anything"}, true},
		{"heat", []string{"Heat Pump Guide"}, true},
		{"PUMP", []string{"x", "heat-pump"}, true},
		{"boiler", []string{"Heat Pump Guide", "hp-guide"}, false},
	}

	for _, tt := range tests {
		if got := matchesFilter(tt.filter, tt.fields...); got != tt.want {
			t.Errorf("matchesFilter(%q, %v) = %v, want %v", tt.filter, tt.fields, got, tt.want)
		}
	}
}

func TestClusterList_OpenCluster(t *testing.T) {
	m := NewClusterListModel(loadTestRepo(t))

	if got := m.Selected(); got != "" {
		t.Fatalf("expected the all-articles row first, got %q", got)
	}
	_, cmd := m.Update(keyMsg("enter"))
	if open, ok := runCmd(cmd).(OpenClusterMsg); !ok || open.Cluster != "" {
		t.Errorf("expected OpenClusterMsg for all articles, got %#v", runCmd(cmd))
	}

	// Clusters are sorted by name: Air Quality, Heat Pumps
	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	_, cmd = m.Update(keyMsg("enter"))
	if open, ok := runCmd(cmd).(OpenClusterMsg); !ok || open.Cluster != "Heat Pumps" {
		t.Errorf("expected OpenClusterMsg for Heat Pumps, got %#v", runCmd(cmd))
	}

	view := m.View()
	if !strings.Contains(view, "4 articles in 2 clusters") {
		t.Errorf("expected totals in view:\n%s", view)
	}
	if !strings.Contains(view, "Heat Pump Guide") {
		t.Errorf("expected pillar title in view:\n%s", view)
	}
}

func TestClusterList_Filter(t *testing.T) {
	m := NewClusterListModel(loadTestRepo(t))

	m.Update(keyMsg("/"))
	for _, r := range "air" {
		m.Update(keyMsg(string(r)))
	}
	m.Update(keyMsg("enter"))

	m.Update(keyMsg("j"))
	if got := m.Selected(); got != "Air Quality" {
		t.Errorf("expected Air Quality after filtering, got %q", got)
	}
	if m.filter.active {
		t.Error("expected enter to leave filter mode")
	}
}

func TestArticleList_ClusterOrderAndActions(t *testing.T) {
	m := NewArticleListModel(loadTestRepo(t))
	m.SetCluster("Heat Pumps")

	if a := m.Selected(); a == nil || a.Slug != "hp-guide" {
		t.Fatalf("expected P1 pillar first, got %+v", a)
	}

	m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("enter"))
	if open, ok := runCmd(cmd).(OpenArticleMsg); !ok || open.Slug != "hp-sizing" {
		t.Errorf("expected OpenArticleMsg for hp-sizing, got %#v", runCmd(cmd))
	}

	_, cmd = m.Update(keyMsg("e"))
	if edit, ok := runCmd(cmd).(OpenEditorMsg); !ok || filepath.Base(edit.Path) != "hp-sizing.md" {
		t.Errorf("expected OpenEditorMsg for hp-sizing.md, got %#v", runCmd(cmd))
	}

	_, cmd = m.Update(keyMsg("esc"))
	if _, ok := runCmd(cmd).(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %#v", runCmd(cmd))
	}

	_, cmd = m.Update(keyMsg("r"))
	if _, ok := runCmd(cmd).(ReloadMsg); !ok {
		t.Errorf("expected ReloadMsg, got %#v", runCmd(cmd))
	}
}

func TestArticleList_FilterEscClears(t *testing.T) {
	m := NewArticleListModel(loadTestRepo(t))
	m.SetCluster("")

	m.Update(keyMsg("/"))
	for _, r := range "noise" {
		m.Update(keyMsg(string(r)))
	}
	if len(m.visible) != 1 || m.visible[0].Slug != "hp-noise" {
		t.Fatalf("expected only hp-noise, got %d articles", len(m.visible))
	}
	if !strings.Contains(m.View(), "1 of 4 articles") {
		t.Errorf("expected filtered count in view:\n%s", m.View())
	}

	// esc inside the filter clears it instead of leaving the view
	_, cmd := m.Update(keyMsg("esc"))
	if cmd != nil {
		t.Errorf("expected no command from esc in filter, got %#v", runCmd(cmd))
	}
	if len(m.visible) != 4 {
		t.Errorf("expected filter cleared, got %d articles", len(m.visible))
	}
}

func TestArticleView_RelatedAndCopy(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	m := NewArticleModel(loadTestRepo(t), ArticleOptions{
		RelatedLimit: 4,
		BaseURL:      "https://example.com/",
		GlamourStyle: "notty",
	})
	if err := m.SetArticle("hp-sizing"); err != nil {
		t.Fatal(err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	if !strings.Contains(view, "Sizing a Heat Pump") || !strings.Contains(view, "Related") {
		t.Errorf("expected title and related section:\n%s", view)
	}

	m.Update(keyMsg("y"))
	if copied != "https://example.com/hp-sizing/" {
		t.Errorf("expected permalink copied, got %q", copied)
	}

	// Related are ordered by priority: hp-guide (P1), hp-noise (P3)
	m.Update(keyMsg("tab"))
	m.Update(keyMsg("j"))
	_, cmd := m.Update(keyMsg("enter"))
	if open, ok := runCmd(cmd).(OpenArticleMsg); !ok || open.Slug != "hp-noise" {
		t.Errorf("expected OpenArticleMsg for hp-noise, got %#v", runCmd(cmd))
	}

	// esc leaves related focus first, then the view
	_, cmd = m.Update(keyMsg("esc"))
	if cmd != nil {
		t.Errorf("expected esc to only drop related focus, got %#v", runCmd(cmd))
	}
	_, cmd = m.Update(keyMsg("esc"))
	if _, ok := runCmd(cmd).(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %#v", runCmd(cmd))
	}
}

func TestArticleView_UnknownSlug(t *testing.T) {
	m := NewArticleModel(loadTestRepo(t), ArticleOptions{GlamourStyle: "notty"})
	if err := m.SetArticle("missing"); err == nil {
		t.Error("expected error for unknown slug")
	}
	if m.Link() != "" {
		t.Errorf("expected no link without an article, got %q", m.Link())
	}
}
