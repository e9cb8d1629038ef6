package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hvacguide/internal/application/commands"
)

var relatedLimit int

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show an article's metadata and related articles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		view, err := commands.NewGetArticleCommand(repo, args[0], cfg.RelatedLimit).Execute(ctx)
		if err != nil {
			return err
		}

		a := view.Article
		fmt.Printf("Title:       %s\n", a.Title)
		fmt.Printf("Slug:        %s\n", a.Slug)
		fmt.Printf("Permalink:   %s\n", cfg.Permalink(a.Permalink()))
		fmt.Printf("Cluster:     %s\n", a.Cluster)
		fmt.Printf("Role:        %s\n", a.Role)
		fmt.Printf("Priority:    %s\n", a.Priority)
		if len(a.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(a.Tags, ", "))
		}
		if !a.DatePublished.IsZero() {
			fmt.Printf("Published:   %s\n", a.DatePublished.Format("2006-01-02"))
		}
		if !a.Modified.IsZero() {
			fmt.Printf("Modified:    %s\n", a.Modified.Format("2006-01-02"))
		}
		fmt.Printf("Reading:     %d min (%d words)\n", a.ReadingTime, a.WordCount)
		fmt.Printf("Source:      %s\n", a.SourcePath)
		if a.Description != "" {
			fmt.Printf("\n%s\n", a.Description)
		}

		if len(view.Related) > 0 {
			fmt.Println("\nRelated:")
			for _, r := range view.Related {
				fmt.Printf("  %s\n", articleLine(r))
			}
		}
		return nil
	},
}

var relatedCmd = &cobra.Command{
	Use:   "related <slug>",
	Short: "List articles related to an article",
	Long: `List up to N articles from the same cluster, P1 first.

Examples:
  hvacguide related heat-pump-sizing
  hvacguide related heat-pump-sizing -n 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		limit := cfg.RelatedLimit
		if cmd.Flags().Changed("limit") {
			limit = relatedLimit
		}

		related, err := commands.NewRelatedArticlesCommand(repo, args[0], limit).Execute(ctx)
		if err != nil {
			return err
		}
		for _, a := range related {
			fmt.Println(articleLine(a))
		}
		return nil
	},
}

func init() {
	relatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", 0, "maximum number of related articles (default relatedLimit from config)")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(relatedCmd)
}
