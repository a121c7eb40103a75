package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultAnthropicEndpoint = "https://api.anthropic.com/v1/messages"

// Anthropic implements the Client interface for the Anthropic
// Messages API.
type Anthropic struct {
	apiKey     string
	endpoint   string
	maxRetries int
	client     *http.Client
}

var _ Client = (*Anthropic)(nil)

// NewAnthropic creates an Anthropic client.
func NewAnthropic(apiKey, endpoint string, timeoutMS, maxRetries int) *Anthropic {
	if endpoint == "" {
		endpoint = defaultAnthropicEndpoint
	}
	return &Anthropic{
		apiKey:     apiKey,
		endpoint:   endpoint,
		maxRetries: maxRetries,
		client:     newHTTPClient(timeoutMS),
	}
}

func (a *Anthropic) Name() string {
	return "anthropic"
}

func (a *Anthropic) GenerateText(ctx context.Context, opts GenerateOptions) (string, error) {
	type apiMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	// Anthropic has no "system" role in messages — it's a top-level field.
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	body := map[string]interface{}{
		"model":      opts.Model,
		"max_tokens": maxTokens,
		"system":     opts.SystemPrompt,
		"messages": []apiMsg{
			{Role: "user", Content: opts.Prompt},
		},
	}
	if opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("x-api-key", a.apiKey)
	header.Set("anthropic-version", "2023-06-01")

	status, respBody, err := postJSON(ctx, a.client, a.maxRetries, a.endpoint, header, payload)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("anthropic API error (%d): %s", status, string(respBody))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("anthropic parse error: %w", err)
	}

	// Concatenate all text blocks
	var text string
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("anthropic returned no text content")
	}
	return text, nil
}
