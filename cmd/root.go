// Package cmd contains all Cobra commands for pgquill.
//
// Design decision: the root command launches the interactive TUI.
// One-shot use goes through the `ask` and `explain` subcommands,
// which print a single result and exit.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgquill/pgquill/ai"
	"github.com/pgquill/pgquill/applog"
	"github.com/pgquill/pgquill/config"
	"github.com/pgquill/pgquill/db"
	"github.com/pgquill/pgquill/query"
	"github.com/pgquill/pgquill/tui"
)

var (
	flagConfig   string
	flagProvider string
	flagAPIKey   string
	flagJSON     bool

	flagDBHost     string
	flagDBPort     int
	flagDBUser     string
	flagDBPassword string
	flagDBName     string

	store = config.NewStore()
)

var rootCmd = &cobra.Command{
	Use:   "pgquill",
	Short: "Natural language to PostgreSQL queries, powered by AI",
	Long: `pgquill turns natural language into PostgreSQL queries:
  • OpenAI, Anthropic, and Gemini providers with automatic selection
  • Live schema grounding from your database (tables, columns, indexes)
  • Safety checks on generated queries before they reach you
  • EXPLAIN ANALYZE + AI performance analysis via 'pgquill explain'

Run 'pgquill' to start the interactive session, or 'pgquill ask' for
a one-shot query.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	// Running with no subcommand launches the TUI.
	RunE: func(cmd *cobra.Command, args []string) error {
		gen, cleanup := newGenerator(cmd.Context())
		defer cleanup()
		return tui.Start(store, gen, flagProvider, flagAPIKey)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/"+config.ConfigFileName+")")
	pf.StringVar(&flagProvider, "provider", "", "AI provider (openai, anthropic, gemini; default auto-select)")
	pf.StringVar(&flagAPIKey, "api-key", "", "API key override for this invocation")
	pf.BoolVar(&flagJSON, "json", false, "format responses as JSON")

	pf.StringVar(&flagDBHost, "host", "", "database host")
	pf.IntVar(&flagDBPort, "port", 0, "database port")
	pf.StringVar(&flagDBUser, "user", "", "database user")
	pf.StringVar(&flagDBPassword, "password", "", "database password")
	pf.StringVar(&flagDBName, "dbname", "", "database name")
}

// setup loads configuration and wires logging. Flags override file
// settings for this invocation only.
func setup() error {
	if err := store.Load(flagConfig); err != nil {
		return err
	}

	cfg := store.Get()
	applog.Configure(cfg.EnableLogging, cfg.LogLevel)
	ai.SetLogEnabled(cfg.EnableLogging)
	applog.Info("pgquill starting (provider=%q)", flagProvider)
	return nil
}

// databaseConfig merges flag overrides onto the configured connection.
func databaseConfig() config.DatabaseConfig {
	dbCfg := store.Get().Database
	if flagDBHost != "" {
		dbCfg.Host = flagDBHost
	}
	if flagDBPort != 0 {
		dbCfg.Port = flagDBPort
	}
	if flagDBUser != "" {
		dbCfg.User = flagDBUser
	}
	if flagDBPassword != "" {
		dbCfg.Password = flagDBPassword
	}
	if flagDBName != "" {
		dbCfg.Database = flagDBName
	}
	return dbCfg
}

// newGenerator builds the pipeline, connecting to the database when
// possible. An unreachable database is not fatal for generation:
// prompts simply go out without schema grounding.
func newGenerator(ctx context.Context) (*query.Generator, func()) {
	cfg := store.Get()

	conn, err := db.Connect(ctx, databaseConfig(), cfg.SSH)
	if err != nil {
		applog.Warning("database unavailable, generating without schema context: %v", err)
		fmt.Fprintf(os.Stderr, "warning: database unavailable, generating without schema context\n")
		return query.NewGenerator(store, nil), func() {}
	}

	return query.NewGenerator(store, conn), conn.Close
}

// formatConfig returns the response configuration with the --json
// override applied.
func formatConfig() config.Configuration {
	cfg := store.Get()
	if flagJSON {
		cfg.UseFormattedResponse = true
	}
	return cfg
}

// Execute runs the root command.
func Execute() error {
	defer applog.Close()
	return rootCmd.Execute()
}
