package cmd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"hvacguide/internal/application/commands"
)

var syncFull bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the SQLite search index",
}

var indexSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the search index in line with the content directory",
	Long: `Index new and changed articles and drop removed ones. A full rebuild
runs with --full, on first use, after a schema change or when the
content directory moved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		index, closeIndex, err := openIndex()
		if err != nil {
			return err
		}
		defer closeIndex()
		if index == nil {
			return errors.New("index is disabled (index.enabled: false)")
		}

		stats, err := commands.NewSyncIndexCommand(repo, index, syncFull).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Indexed %d articles: %d added, %d updated, %d deleted\n",
			stats.Scanned, stats.Added, stats.Updated, stats.Deleted)

		counts, err := index.CountByCluster()
		if err != nil {
			return err
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-28s %3d\n", name, counts[name])
		}
		return nil
	},
}

func init() {
	indexSyncCmd.Flags().BoolVar(&syncFull, "full", false, "rebuild the whole index")

	indexCmd.AddCommand(indexSyncCmd)
	rootCmd.AddCommand(indexCmd)
}
