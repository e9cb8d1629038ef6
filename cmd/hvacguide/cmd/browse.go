package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hvacguide/internal/adapters/browser"
	"hvacguide/internal/adapters/editor"
	"hvacguide/internal/adapters/tui"
	"hvacguide/internal/application/commands"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse articles in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadContent(cmd.Context()); err != nil {
			return err
		}

		opts := tui.Options{
			RelatedLimit: cfg.RelatedLimit,
			BaseURL:      cfg.BaseURL,
			Logger:       logger,
		}
		if pages, err := browser.NewOpener(siteURL()); err == nil {
			opts.Pages = pages
		} else {
			logger.Warn("browser links disabled", zap.Error(err))
		}

		app := tui.NewApp(repo, editor.NewOpener(), opts)

		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("browser: %w", err)
		}
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <slug>",
	Short: "Open an article in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		view, err := commands.NewGetArticleCommand(repo, strings.TrimSpace(args[0]), 0).Execute(ctx)
		if err != nil {
			return err
		}
		return editor.NewOpener().OpenFile(view.Article.SourcePath)
	},
}

var openCmd = &cobra.Command{
	Use:   "open <slug>",
	Short: "Open an article in the web browser",
	Long: `Open an article page in the default browser, on baseURL when set and
on the local preview server otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		view, err := commands.NewGetArticleCommand(repo, strings.TrimSpace(args[0]), 0).Execute(ctx)
		if err != nil {
			return err
		}

		pages, err := browser.NewOpener(siteURL())
		if err != nil {
			return err
		}
		return pages.OpenPath(view.Article.Permalink())
	},
}

// siteURL is the deployed site when configured, else the preview server
func siteURL() string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
}

func init() {
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(openCmd)
}
