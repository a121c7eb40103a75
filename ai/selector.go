// selector.go resolves which provider and credential serve a request.
package ai

import (
	"fmt"

	"github.com/pgquill/pgquill/applog"
	"github.com/pgquill/pgquill/config"
)

// autoSelectOrder is the fixed priority used when no provider is
// requested explicitly.
var autoSelectOrder = []config.Provider{
	config.ProviderOpenAI,
	config.ProviderAnthropic,
	config.ProviderGemini,
}

// SelectProvider picks the provider and API key for one request.
//
// An exact (case-sensitive) match of preference against a known
// provider name selects that provider explicitly. Anything else —
// empty, "auto", or an unrecognized string, including uppercased
// names like "OPENAI" — falls through to auto-selection. The
// case-sensitive narrowing of the explicit path is deliberate,
// long-standing behavior; callers who want routing for arbitrary
// casing should normalize before calling.
func SelectProvider(store *config.Store, apiKey, preference string) SelectionResult {
	switch preference {
	case "openai":
		return selectExplicit(store, apiKey, config.ProviderOpenAI)
	case "anthropic":
		return selectExplicit(store, apiKey, config.ProviderAnthropic)
	case "gemini":
		return selectExplicit(store, apiKey, config.ProviderGemini)
	}
	return autoSelect(store, apiKey)
}

func selectExplicit(store *config.Store, apiKey string, p config.Provider) SelectionResult {
	result := SelectionResult{Provider: p, Success: true}
	if pc, ok := store.ProviderConfig(p); ok {
		result.Config = &pc
	}

	name := p.String()
	applog.Info("explicit %s provider selection from parameter", name)

	if apiKey != "" {
		result.APIKey = apiKey
		result.APIKeySource = "parameter"
	} else if result.Config != nil && result.Config.APIKey != "" {
		result.APIKey = result.Config.APIKey
		result.APIKeySource = name + "_config"
		applog.Info("using %s API key from configuration", name)
	}

	if result.APIKey == "" {
		result.Success = false
		result.ErrorMessage = fmt.Sprintf(
			"No API key available for %s provider. Please provide an API key "+
				"as a parameter or configure it in ~/%s.", name, config.ConfigFileName)
	}
	return result
}

func autoSelect(store *config.Store, apiKey string) SelectionResult {
	// An inline key with no provider preference means the first-party
	// default: OpenAI.
	if apiKey != "" {
		result := SelectionResult{
			Provider:     config.ProviderOpenAI,
			APIKey:       apiKey,
			APIKeySource: "parameter",
			Success:      true,
		}
		if pc, ok := store.ProviderConfig(config.ProviderOpenAI); ok {
			result.Config = &pc
		}
		applog.Info("auto-selecting openai provider (API key provided, no provider specified)")
		return result
	}

	for _, p := range autoSelectOrder {
		pc, ok := store.ProviderConfig(p)
		if !ok || pc.APIKey == "" {
			continue
		}
		applog.Info("auto-selecting %s provider based on configuration", p)
		return SelectionResult{
			Provider:     p,
			Config:       &pc,
			APIKey:       pc.APIKey,
			APIKeySource: p.String() + "_config",
			Success:      true,
		}
	}

	applog.Warning("no API key found in config")
	return SelectionResult{
		Success: false,
		ErrorMessage: fmt.Sprintf(
			"API key required. Pass an API key as a parameter or set an OpenAI, "+
				"Anthropic, or Gemini API key in ~/%s.", config.ConfigFileName),
	}
}
