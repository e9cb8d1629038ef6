package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"hvacguide/internal/adapters/filesystem"
	mcpadapter "hvacguide/internal/adapters/mcp"
	"hvacguide/internal/adapters/sqlite"
	"hvacguide/internal/application/commands"
	"hvacguide/internal/config"
	"hvacguide/internal/logging"
	"hvacguide/internal/ports"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hvacguide-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("hvacguide-mcp", pflag.ExitOnError)
	cfgFile := flags.String("config", "", "config file (default ./hvacguide.yaml)")
	flags.StringP("content", "c", config.DefaultContentDir, "content directory")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	_ = flags.Parse(os.Args[1:])

	cfg, _, err := config.Load(*cfgFile, flags)
	if err != nil {
		return err
	}

	// stdout carries the MCP protocol, logs go to stderr
	logger, err := logging.New(cfg.Log.Level, "json")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	repo := filesystem.NewRepository(cfg.ContentDir, filesystem.Options{
		WordsPerMinute: cfg.WordsPerMinute,
		Logger:         logger,
	})
	if err := repo.Load(ctx); err != nil {
		return err
	}

	var index ports.ArticleIndex
	if cfg.Index.Enabled {
		idx := sqlite.NewIndex(logger)
		if err := idx.Open(repo.ContentDir()); err != nil {
			return fmt.Errorf("failed to open index: %w", err)
		}
		defer idx.Close()

		stats, err := commands.NewSyncIndexCommand(repo, idx, false).Execute(ctx)
		if err != nil {
			return err
		}
		logger.Debug("index synced", zap.Int("scanned", stats.Scanned))
		index = idx
	}

	mcpServer := server.NewMCPServer(
		"hvacguide-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, mcpadapter.ReadOptions{
		Index:        index,
		RelatedLimit: cfg.RelatedLimit,
	})
	mcpadapter.RegisterWriteTools(mcpServer, repo)

	logger.Info("serving MCP on stdio",
		zap.String("content", repo.ContentDir()),
		zap.Int("articles", len(repo.GetAllSlugs())))
	return server.ServeStdio(mcpServer)
}
