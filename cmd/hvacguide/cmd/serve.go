package cmd

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hvacguide/internal/adapters/httpserver"
	"hvacguide/internal/adapters/site"
	"hvacguide/internal/adapters/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preview server",
	Long: `Serve the site from memory, rendering each page on request. With
--watch the content directory is watched and reloaded on change; a
failed reload is logged and the previous content keeps serving.

Examples:
  hvacguide serve
  hvacguide serve --port 3000 --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := loadContent(ctx); err != nil {
			return err
		}

		renderer, err := site.NewRenderer(site.SiteInfo{
			Title:   cfg.SiteTitle,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return err
		}

		srv := httpserver.New(repo, renderer, httpserver.Options{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			StaticDir:    cfg.StaticDir,
			RelatedLimit: cfg.RelatedLimit,
			Logger:       logger,
			OnListen: func(addr net.Addr) {
				port := cfg.Server.Port
				if tcp, ok := addr.(*net.TCPAddr); ok {
					port = tcp.Port
				}
				fmt.Printf("Serving %d articles on http://localhost:%d\n", len(repo.GetAllSlugs()), port)
			},
		})

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.ListenAndServe(ctx)
		})

		if cfg.Server.Watch {
			w := watcher.New([]string{repo.ContentDir()}, watcher.DefaultDebounce, repo.Load, logger)
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "listen port (default server.port from config)")
	serveCmd.Flags().BoolP("watch", "w", false, "reload content on change")

	rootCmd.AddCommand(serveCmd)
}
