// Package ai resolves which AI provider serves a request and carries
// out the text-generation call against it.
//
// Design decisions:
//   - Client is an interface so we can swap backends (OpenAI, Anthropic,
//     Gemini) without touching the generation pipeline.
//   - All calls accept a context for cancellation.
//   - Selection and transport are separate: SelectProvider decides who
//     and with which credential, NewClient builds the wire client.
package ai

import (
	"context"

	"github.com/pgquill/pgquill/config"
)

// GenerateOptions carries one text-generation request.
type GenerateOptions struct {
	Model        string
	SystemPrompt string
	Prompt       string
	MaxTokens    int
	Temperature  float64
}

// Client is the interface all AI backends implement.
type Client interface {
	// GenerateText sends a single prompt and returns the raw model text.
	GenerateText(ctx context.Context, opts GenerateOptions) (string, error)

	// Name returns the provider name for display and logging.
	Name() string
}

// SelectionResult records the outcome of provider resolution for one
// request. It is constructed fresh per request and never mutated.
type SelectionResult struct {
	Provider config.Provider
	Config   *config.ProviderConfig // nil when the provider has no config entry
	APIKey   string
	// APIKeySource is "parameter" or "<provider>_config".
	APIKeySource string
	Success      bool
	ErrorMessage string
}
