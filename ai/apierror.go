// apierror.go reformats raw provider error bodies into a single
// user-facing line.
package ai

import (
	"encoding/json"
	"strings"
)

// FormatAPIError turns a provider-specific error payload into a
// readable message. Wrong model names are the most common config
// mistake, so not-found errors get special handling that names the
// offending model and suggests known-good alternatives.
func FormatAPIError(raw string) string {
	// Provider errors usually arrive with a text prefix before the
	// JSON body; parse from the first brace.
	toParse := raw
	if i := strings.Index(raw, "{"); i >= 0 {
		toParse = raw[i:]
	}

	var payload struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(toParse), &payload); err != nil {
		return raw
	}
	if payload.Error.Message == "" && payload.Error.Type == "" {
		return raw
	}

	if payload.Error.Type == "not_found_error" {
		if model := modelFromMessage(payload.Error.Message); model != "" {
			return "Invalid model '" + model + "'. Please check your configuration " +
				"and use a valid model name. Common models: " +
				"'claude-sonnet-4-5-20250929' (Anthropic), 'gpt-4o' (OpenAI)."
		}
		return "Model not found. Please check your model configuration and " +
			"ensure you're using a valid model name."
	}

	if payload.Error.Message != "" {
		return payload.Error.Message
	}
	return raw
}

// modelFromMessage pulls the model name out of messages shaped like
// "model: claude-nonexistent".
func modelFromMessage(msg string) string {
	i := strings.Index(msg, "model:")
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(msg[i+len("model:"):])
}
