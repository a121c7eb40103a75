package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAI implements the Client interface for OpenAI's Chat API.
type OpenAI struct {
	apiKey     string
	endpoint   string
	maxRetries int
	client     *http.Client
}

var _ Client = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI client. endpoint overrides the default
// API URL when non-empty (api_endpoint config key).
func NewOpenAI(apiKey, endpoint string, timeoutMS, maxRetries int) *OpenAI {
	if endpoint == "" {
		endpoint = defaultOpenAIEndpoint
	}
	return &OpenAI{
		apiKey:     apiKey,
		endpoint:   endpoint,
		maxRetries: maxRetries,
		client:     newHTTPClient(timeoutMS),
	}
}

func (o *OpenAI) Name() string {
	return "openai"
}

func (o *OpenAI) GenerateText(ctx context.Context, opts GenerateOptions) (string, error) {
	type chatMsg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	body := map[string]interface{}{
		"model": opts.Model,
		"messages": []chatMsg{
			{Role: "system", Content: opts.SystemPrompt},
			{Role: "user", Content: opts.Prompt},
		},
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
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
	header.Set("Authorization", "Bearer "+o.apiKey)

	status, respBody, err := postJSON(ctx, o.client, o.maxRetries, o.endpoint, header, payload)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("openai API error (%d): %s", status, string(respBody))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("openai parse error: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
