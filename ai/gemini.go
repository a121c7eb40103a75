package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Gemini implements the Client interface for Google's Gemini
// generateContent API.
type Gemini struct {
	apiKey     string
	endpoint   string
	maxRetries int
	client     *http.Client
}

var _ Client = (*Gemini)(nil)

// NewGemini creates a Gemini client. endpoint overrides the API base
// URL (everything before /models/...) when non-empty.
func NewGemini(apiKey, endpoint string, timeoutMS, maxRetries int) *Gemini {
	if endpoint == "" {
		endpoint = defaultGeminiEndpoint
	}
	return &Gemini{
		apiKey:     apiKey,
		endpoint:   endpoint,
		maxRetries: maxRetries,
		client:     newHTTPClient(timeoutMS),
	}
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) GenerateText(ctx context.Context, opts GenerateOptions) (string, error) {
	type part struct {
		Text string `json:"text"`
	}

	genConfig := map[string]interface{}{}
	if opts.Temperature > 0 {
		genConfig["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		genConfig["maxOutputTokens"] = opts.MaxTokens
	}

	body := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []part{{Text: opts.Prompt}}},
		},
	}
	if opts.SystemPrompt != "" {
		body["systemInstruction"] = map[string]interface{}{
			"parts": []part{{Text: opts.SystemPrompt}},
		}
	}
	if len(genConfig) > 0 {
		body["generationConfig"] = genConfig
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.endpoint, opts.Model, g.apiKey)

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	status, respBody, err := postJSON(ctx, g.client, g.maxRetries, url, header, payload)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("gemini API error (%d): %s", status, string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("gemini parse error: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}

	var text string
	for _, p := range result.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
