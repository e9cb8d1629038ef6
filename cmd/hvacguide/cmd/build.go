package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hvacguide/internal/adapters/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site to static files",
	Long: `Render the home page, one hub page per cluster, one page per article
and sitemap.xml into the output directory, and copy static assets.
The output directory is wiped first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
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

		builder := site.NewBuilder(repo, renderer, site.BuildOptions{
			OutputDir:    cfg.OutputDir,
			StaticDir:    cfg.StaticDir,
			Workers:      cfg.Build.Workers,
			RelatedLimit: cfg.RelatedLimit,
		}, logger)

		stats, err := builder.Build(ctx)
		if err != nil {
			return err
		}

		logger.Info("site built",
			zap.String("out", cfg.OutputDir),
			zap.Duration("duration", stats.Duration))
		fmt.Printf("Built %d articles, %d hubs, %d assets into %s in %s\n",
			stats.Articles, stats.Hubs, stats.Assets, cfg.OutputDir, stats.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default outputDir from config)")
	buildCmd.Flags().Int("workers", 0, "parallel page renderers (default build.workers from config)")

	rootCmd.AddCommand(buildCmd)
}
