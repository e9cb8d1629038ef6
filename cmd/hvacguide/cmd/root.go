package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hvacguide/internal/adapters/filesystem"
	"hvacguide/internal/adapters/sqlite"
	"hvacguide/internal/config"
	"hvacguide/internal/logging"
	"hvacguide/internal/ports"
)

var (
	cfgFile     string
	contentFlag string
	logLevel    string

	cfg    *config.Config
	logger *zap.Logger
	repo   *filesystem.Repository
)

var rootCmd = &cobra.Command{
	Use:   "hvacguide",
	Short: "Content index for the HVAC guide site",
	Long: `hvacguide loads the markdown articles of the HVAC guide, groups them
into topic clusters and serves them to the site build, the preview
server, the terminal browser and MCP clients.

Configuration is read from hvacguide.yaml, HVACGUIDE_* environment
variables and flags, in increasing precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		c, used, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return err
		}
		if used != "" {
			logger.Debug("config loaded", zap.String("file", used))
		}

		repo = filesystem.NewRepository(cfg.ContentDir, filesystem.Options{
			WordsPerMinute: cfg.WordsPerMinute,
			Logger:         logger,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./hvacguide.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contentFlag, "content", "c", config.DefaultContentDir, "content directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// loadContent reads every article from the content directory
func loadContent(ctx context.Context) error {
	if err := repo.Load(ctx); err != nil {
		return err
	}
	return nil
}

// loadContentIfExists is loadContent for commands that may run before
// the content directory is created
func loadContentIfExists(ctx context.Context) error {
	err := loadContent(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// openIndex opens the persisted search index when it is enabled. The
// returned close func is always safe to call. The interface is nil, not a
// typed nil, when the index is disabled.
func openIndex() (ports.ArticleIndex, func(), error) {
	if !cfg.Index.Enabled {
		return nil, func() {}, nil
	}

	idx := sqlite.NewIndex(logger)
	if err := idx.Open(repo.ContentDir()); err != nil {
		return nil, func() {}, fmt.Errorf("failed to open index: %w", err)
	}
	return idx, func() { _ = idx.Close() }, nil
}
