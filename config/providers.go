// Package config holds all pgquill settings: provider credentials and
// models, query generation policy, and response shaping.
//
// Separated from cmd so that other packages (ai, query, db, tui) can
// depend on config without importing Cobra.
package config

import "strings"

// Provider identifies an AI text-generation service.
type Provider int

const (
	ProviderUnknown Provider = iota
	ProviderOpenAI
	ProviderAnthropic
	ProviderGemini
)

// String returns the canonical lowercase provider name.
func (p Provider) String() string {
	switch p {
	case ProviderOpenAI:
		return "openai"
	case ProviderAnthropic:
		return "anthropic"
	case ProviderGemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// ParseProvider maps a provider name to its enum value. Matching is
// case-insensitive; unrecognized names map to ProviderUnknown, never
// an error.
func ParseProvider(s string) Provider {
	switch strings.ToLower(s) {
	case "openai":
		return ProviderOpenAI
	case "anthropic":
		return ProviderAnthropic
	case "gemini":
		return ProviderGemini
	default:
		return ProviderUnknown
	}
}

// ProviderConfig holds everything needed to talk to one provider.
// An entry with an empty APIKey counts as "not configured" for
// provider selection.
type ProviderConfig struct {
	Provider           Provider
	APIKey             string
	DefaultModel       string
	DefaultMaxTokens   int
	DefaultTemperature float64
	APIEndpoint        string // custom endpoint override, empty = provider default
}

// Built-in provider defaults, applied when a provider section first
// appears in the config file (explicit keys then overlay these).
const (
	DefaultOpenAIModel    = "gpt-4o"
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultGeminiModel    = "gemini-2.0-flash"

	DefaultOpenAIMaxTokens    = 4096
	DefaultAnthropicMaxTokens = 8192
	DefaultGeminiMaxTokens    = 8192

	DefaultTemperature = 0.7
)

// DefaultProviderConfig returns the built-in defaults for a provider,
// as if its section appeared in the config file with no keys.
func DefaultProviderConfig(p Provider) ProviderConfig {
	return newProviderConfig(p)
}

// newProviderConfig seeds a ProviderConfig with the built-in defaults
// for the given provider.
func newProviderConfig(p Provider) ProviderConfig {
	cfg := ProviderConfig{
		Provider:           p,
		DefaultMaxTokens:   DefaultOpenAIMaxTokens,
		DefaultTemperature: DefaultTemperature,
	}
	switch p {
	case ProviderOpenAI:
		cfg.DefaultModel = DefaultOpenAIModel
	case ProviderAnthropic:
		cfg.DefaultModel = DefaultAnthropicModel
		cfg.DefaultMaxTokens = DefaultAnthropicMaxTokens
	case ProviderGemini:
		cfg.DefaultModel = DefaultGeminiModel
		cfg.DefaultMaxTokens = DefaultGeminiMaxTokens
	}
	return cfg
}
