package ai

import (
	"strings"
	"testing"
)

func TestFormatAPIErrorExtractsMessage(t *testing.T) {
	raw := `anthropic API error (429): {"error": {"type": "rate_limit_error", "message": "Rate limit exceeded"}}`
	if got := FormatAPIError(raw); got != "Rate limit exceeded" {
		t.Fatalf("FormatAPIError() = %q", got)
	}
}

func TestFormatAPIErrorInvalidModel(t *testing.T) {
	raw := `{"error": {"type": "not_found_error", "message": "model: claude-nonexistent"}}`
	got := FormatAPIError(raw)
	if !strings.Contains(got, "Invalid model 'claude-nonexistent'") {
		t.Fatalf("FormatAPIError() = %q", got)
	}
	if !strings.Contains(got, "claude-sonnet-4-5-20250929") || !strings.Contains(got, "gpt-4o") {
		t.Fatalf("suggestions missing: %q", got)
	}
}

func TestFormatAPIErrorNotFoundWithoutModelName(t *testing.T) {
	raw := `{"error": {"type": "not_found_error", "message": "resource missing"}}`
	got := FormatAPIError(raw)
	if !strings.Contains(got, "Model not found") {
		t.Fatalf("FormatAPIError() = %q", got)
	}
}

func TestFormatAPIErrorPassesThroughNonJSON(t *testing.T) {
	for _, raw := range []string{
		"connection refused",
		"502 Bad Gateway",
		`{"unrelated": true}`,
	} {
		if got := FormatAPIError(raw); got != raw {
			t.Fatalf("FormatAPIError(%q) = %q, want passthrough", raw, got)
		}
	}
}
