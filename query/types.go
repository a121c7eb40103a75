// Package query is the generation pipeline: it grounds a natural
// language request in schema metadata, sends it to the selected AI
// provider, and turns the untrusted model output into a validated
// result.
package query

import (
	"context"

	"github.com/pgquill/pgquill/db"
)

// Request is one natural-language generation request.
type Request struct {
	NaturalLanguage string
	// APIKey is an optional inline credential; it takes precedence
	// over configured keys.
	APIKey string
	// Provider is an optional provider preference: a known provider
	// name, "auto", or empty (both of the latter mean auto-select).
	Provider string
}

// Result is the terminal artifact of the pipeline. It is immutable
// once produced and consumed exactly once by the formatter.
type Result struct {
	GeneratedQuery         string
	Explanation            string
	Warnings               []string
	RowLimitApplied        bool
	SuggestedVisualization string
	Success                bool
	ErrorMessage           string
}

// failure builds the Result shape every error path shares.
func failure(msg string) Result {
	return Result{Success: false, ErrorMessage: msg}
}

// ExplainRequest asks for an AI performance analysis of a query.
type ExplainRequest struct {
	QueryText string
	APIKey    string
	Provider  string
}

// ExplainResult carries the raw plan and the provider's analysis.
type ExplainResult struct {
	Query         string
	ExplainOutput string
	AIExplanation string
	Success       bool
	ErrorMessage  string
}

// Catalog is the slice of the db package the pipeline consumes: the
// table listing and detail lookups that ground prompts, plus EXPLAIN
// execution for performance analysis. *db.DB satisfies it; tests use
// fakes.
type Catalog interface {
	ListTables(ctx context.Context) ([]db.TableInfo, error)
	TableDetails(ctx context.Context, table, schema string) (*db.TableDetails, error)
	Explain(ctx context.Context, sql string) (string, error)
}
