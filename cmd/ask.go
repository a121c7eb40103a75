package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgquill/pgquill/query"
)

var askCmd = &cobra.Command{
	Use:   "ask [request...]",
	Short: "Generate a SQL query from a natural language request",
	Example: `  pgquill ask "show the ten most recent orders"
  pgquill ask --provider anthropic "total revenue per customer this year"
  pgquill ask --json "count users by signup month"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, cleanup := newGenerator(cmd.Context())
		defer cleanup()

		result := gen.GenerateQuery(cmd.Context(), query.Request{
			NaturalLanguage: strings.Join(args, " "),
			APIKey:          flagAPIKey,
			Provider:        flagProvider,
		})

		if !result.Success {
			return errors.New(result.ErrorMessage)
		}
		fmt.Println(query.Format(result, formatConfig()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
