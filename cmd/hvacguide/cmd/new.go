package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvacguide/internal/application/commands"
)

var (
	newTitle       string
	newCluster     string
	newDescription string
	newRole        string
	newPriority    string
)

var newCmd = &cobra.Command{
	Use:   "new <slug>",
	Short: "Create a new article",
	Long: `Create <content>/<slug>.md with front-matter and a body skeleton.
Existing slugs and files are never overwritten.

Examples:
  hvacguide new heat-pump-noise --title "Heat Pump Noise" --cluster "Heat Pumps"
  hvacguide new hp-guide --title "Heat Pump Guide" --cluster "Heat Pumps" --role pillar --priority P1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContentIfExists(ctx); err != nil {
			return err
		}

		createCmd := commands.NewCreateArticleCommand(repo, args[0], newTitle, newCluster)
		createCmd.Description = newDescription
		createCmd.Role = newRole
		createCmd.Priority = newPriority

		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVarP(&newTitle, "title", "t", "", "article title")
	newCmd.Flags().StringVar(&newCluster, "cluster", "", "topic cluster")
	newCmd.Flags().StringVarP(&newDescription, "description", "d", "", "meta description")
	newCmd.Flags().StringVar(&newRole, "role", "spoke", "pillar, hub or spoke")
	newCmd.Flags().StringVar(&newPriority, "priority", "P3", "P1, P2 or P3")
	_ = newCmd.MarkFlagRequired("title")
	_ = newCmd.MarkFlagRequired("cluster")

	rootCmd.AddCommand(newCmd)
}
