package ai

import (
	"fmt"

	"github.com/pgquill/pgquill/config"
)

// SupportedProviders lists selectable provider names for display.
var SupportedProviders = []string{"openai", "anthropic", "gemini"}

// NewClient builds the wire client for a successful provider
// selection, honoring any configured endpoint override plus the
// store-wide timeout and retry budget.
func NewClient(sel SelectionResult, cfg config.Configuration) (Client, error) {
	if !sel.Success {
		return nil, fmt.Errorf("provider selection failed: %s", sel.ErrorMessage)
	}

	endpoint := ""
	if sel.Config != nil {
		endpoint = sel.Config.APIEndpoint
	}

	switch sel.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(sel.APIKey, endpoint, cfg.RequestTimeoutMS, cfg.MaxRetries), nil
	case config.ProviderAnthropic:
		return NewAnthropic(sel.APIKey, endpoint, cfg.RequestTimeoutMS, cfg.MaxRetries), nil
	case config.ProviderGemini:
		return NewGemini(sel.APIKey, endpoint, cfg.RequestTimeoutMS, cfg.MaxRetries), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q. Supported: openai, anthropic, gemini", sel.Provider)
	}
}

// ModelSettings resolves model name, token cap, and temperature for a
// selection, falling back to the provider's built-in defaults when
// the config has no section for it.
func ModelSettings(sel SelectionResult) (model string, maxTokens int, temperature float64) {
	pc := config.DefaultProviderConfig(sel.Provider)
	if sel.Config != nil {
		pc = *sel.Config
	}
	return pc.DefaultModel, pc.DefaultMaxTokens, pc.DefaultTemperature
}
