package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hvacguide/internal/application"
	"hvacguide/internal/application/commands"
)

var errValidationFailed = errors.New("content has validation errors")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check article metadata",
	Long: `Report missing or malformed article metadata: titles, descriptions,
clusters, roles, priorities and dates. Exits non-zero when any error is
found; warnings alone do not fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := loadContent(ctx); err != nil {
			return err
		}

		issues, err := commands.NewValidateContentCommand(repo).Execute(ctx)
		if err != nil {
			return err
		}

		var errCount, warnCount int
		for _, issue := range issues {
			fmt.Println(issue)
			if issue.Severity == application.SeverityError {
				errCount++
			} else {
				warnCount++
			}
		}
		fmt.Printf("%d articles checked: %d errors, %d warnings\n",
			len(repo.GetAllSlugs()), errCount, warnCount)

		if errCount > 0 {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
