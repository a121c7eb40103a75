package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgquill/pgquill/query"
)

var explainCmd = &cobra.Command{
	Use:   "explain [sql...]",
	Short: "Run EXPLAIN ANALYZE on a query and get an AI performance analysis",
	Long: `Executes the query under EXPLAIN (ANALYZE, VERBOSE, COSTS, SETTINGS,
BUFFERS, FORMAT JSON) and asks the selected AI provider to interpret
the plan: bottlenecks, index opportunities, and rewrite suggestions.

The query is executed against the database, so side effects of DML
statements will happen.`,
	Example: `  pgquill explain "SELECT * FROM orders WHERE customer_id = 42"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, cleanup := newGenerator(cmd.Context())
		defer cleanup()

		result := gen.ExplainQuery(cmd.Context(), query.ExplainRequest{
			QueryText: strings.Join(args, " "),
			APIKey:    flagAPIKey,
			Provider:  flagProvider,
		})
		if !result.Success {
			return errors.New(result.ErrorMessage)
		}

		fmt.Println("-- EXPLAIN ANALYZE output:")
		fmt.Println(result.ExplainOutput)
		fmt.Println()
		fmt.Println("-- Analysis:")
		fmt.Println(result.AIExplanation)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
