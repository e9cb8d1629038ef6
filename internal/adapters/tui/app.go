package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hvacguide/internal/adapters/tui/views"
	"hvacguide/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewClusters ViewState = iota
	ViewArticles
	ViewArticle
	ViewHelp
)

// Options configures the browser
type Options struct {
	RelatedLimit int
	BaseURL      string
	GlamourStyle string
	Logger       *zap.Logger
	// Pages opens articles in a web browser; nil disables the key
	Pages ports.PageOpener
}

// frame is one entry of the back stack
type frame struct {
	state ViewState
	slug  string // article shown, for ViewArticle
}

// App is the main TUI application model
type App struct {
	repo   ports.ContentRepository
	editor ports.EditorOpener
	pages  ports.PageOpener
	logger *zap.Logger

	state    ViewState
	history  []frame
	clusters *views.ClusterListModel
	articles *views.ArticleListModel
	article  *views.ArticleModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil when no editor is configured.
func NewApp(repo ports.ContentRepository, ed ports.EditorOpener, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		repo:     repo,
		editor:   ed,
		pages:    opts.Pages,
		logger:   logger,
		state:    ViewClusters,
		clusters: views.NewClusterListModel(repo),
		articles: views.NewArticleListModel(repo),
		article: views.NewArticleModel(repo, views.ArticleOptions{
			RelatedLimit: opts.RelatedLimit,
			BaseURL:      opts.BaseURL,
			GlamourStyle: opts.GlamourStyle,
		}),
		help: views.NewHelpModel(),
	}
}

// State returns the view currently shown
func (a *App) State() ViewState {
	return a.state
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.clusters.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.clusters.Update(msg)
		a.articles.Update(msg)
		a.article.Update(msg)
		a.help.Update(msg)
		return a, nil

	case views.QuitMsg:
		return a, tea.Quit

	case views.SwitchToHelpMsg:
		a.push(ViewHelp)
		return a, nil

	case views.BackMsg:
		a.back()
		return a, nil

	case views.OpenClusterMsg:
		a.articles.SetCluster(msg.Cluster)
		a.push(ViewArticles)
		return a, nil

	case views.OpenArticleMsg:
		prev := a.currentFrame()
		if err := a.article.SetArticle(msg.Slug); err != nil {
			a.setMessage(err.Error(), true)
			return a, nil
		}
		a.history = append(a.history, prev)
		a.state = ViewArticle
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenPageMsg:
		return a, a.openPage(msg.Path)

	case pageOpenedMsg:
		if msg.err != nil {
			a.setMessage(fmt.Sprintf("Browser: %v", msg.err), true)
		}
		return a, nil

	case views.ReloadMsg:
		return a, a.reload()

	case editorFinishedMsg:
		if msg.err != nil {
			a.setMessage(fmt.Sprintf("Editor: %v", msg.err), true)
			return a, nil
		}
		return a, a.reload()

	case reloadedMsg:
		a.applyReload(msg.err)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewClusters:
		_, cmd = a.clusters.Update(msg)
	case ViewArticles:
		_, cmd = a.articles.Update(msg)
	case ViewArticle:
		_, cmd = a.article.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) currentFrame() frame {
	f := frame{state: a.state}
	if a.state == ViewArticle && a.article.Article() != nil {
		f.slug = a.article.Article().Slug
	}
	return f
}

func (a *App) push(state ViewState) {
	a.history = append(a.history, a.currentFrame())
	a.state = state
}

// back pops the history; an article frame is re-opened by slug so that
// following related links can be unwound one article at a time
func (a *App) back() {
	if len(a.history) == 0 {
		a.state = ViewClusters
		return
	}
	f := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]

	if f.state == ViewArticle && f.slug != "" {
		if err := a.article.SetArticle(f.slug); err != nil {
			a.back()
			return
		}
	}
	a.state = f.state
}

type editorFinishedMsg struct{ err error }

type reloadedMsg struct{ err error }

type pageOpenedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil || !a.editor.Available() {
		a.setMessage("No editor configured, set $EDITOR", true)
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) openPage(path string) tea.Cmd {
	if a.pages == nil {
		a.setMessage("No site URL configured, set baseURL", true)
		return nil
	}
	pages := a.pages
	return func() tea.Msg {
		return pageOpenedMsg{err: pages.OpenPath(path)}
	}
}

func (a *App) reload() tea.Cmd {
	return func() tea.Msg {
		return reloadedMsg{err: a.repo.Load(context.Background())}
	}
}

func (a *App) applyReload(err error) {
	if err != nil {
		a.logger.Warn("reload failed", zap.Error(err))
		a.setMessage(fmt.Sprintf("Reload failed: %v", err), true)
		return
	}

	a.clusters.Refresh()
	a.articles.Refresh()
	if cur := a.article.Article(); cur != nil {
		if err := a.article.SetArticle(cur.Slug); err != nil && a.state == ViewArticle {
			a.back()
		}
	}
	a.setMessage(fmt.Sprintf("Reloaded %d articles", len(a.repo.GetAllSlugs())), false)
}

func (a *App) setMessage(msg string, isErr bool) {
	switch a.state {
	case ViewClusters:
		a.clusters.SetMessage(msg, isErr)
	case ViewArticles:
		a.articles.SetMessage(msg, isErr)
	case ViewArticle:
		a.article.SetMessage(msg, isErr)
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewArticles:
		return a.articles.View()
	case ViewArticle:
		return a.article.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.clusters.View()
	}
}
