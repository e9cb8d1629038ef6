package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvacguide/internal/application/commands"
	"hvacguide/internal/domain"
)

var listCluster string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Long: `List every article sorted by slug, or the articles of one cluster
sorted by priority.

Examples:
  hvacguide list
  hvacguide list --cluster "Heat Pumps"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		articles, err := commands.NewListArticlesCommand(repo, listCluster).Execute(ctx)
		if err != nil {
			return err
		}
		for _, a := range articles {
			fmt.Println(articleLine(a))
		}
		return nil
	},
}

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "List topic clusters with article counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		clusters, err := commands.NewListClustersCommand(repo).Execute(ctx)
		if err != nil {
			return err
		}
		for _, c := range clusters {
			pillar := "-"
			if c.Pillar != nil {
				pillar = c.Pillar.Slug
			}
			fmt.Printf("%-28s %3d  %-32s %s\n", c.Name, c.Count, c.Path(), pillar)
		}
		return nil
	},
}

func articleLine(a domain.Article) string {
	return fmt.Sprintf("%-2s  %-40s %s", a.Priority, a.Slug, a.Title)
}

func init() {
	listCmd.Flags().StringVar(&listCluster, "cluster", "", "only list articles of this cluster")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(clustersCmd)
}
