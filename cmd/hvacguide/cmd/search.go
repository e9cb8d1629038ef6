package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hvacguide/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search articles by title, slug, cluster and description",
	Long: `Search articles. With the index enabled the query runs against the
SQLite index, which is brought up to date first; otherwise the loaded
articles are scanned.

Examples:
  hvacguide search "heat pump"
  hvacguide search merv`,
	Args: cobra.MinimumNArgs(1),
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

		if index != nil {
			if _, err := commands.NewSyncIndexCommand(repo, index, false).Execute(ctx); err != nil {
				return err
			}
		}

		query := strings.Join(args, " ")
		results, err := commands.NewSearchCommand(repo, index, query).Execute(ctx)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No results")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%-40s %-40s [%s]\n", r.Slug, r.Title, r.Cluster)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
