package query

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pgquill/pgquill/config"
)

func responseConfig() config.Configuration {
	return config.Configuration{
		ShowExplanation:            true,
		ShowWarnings:               true,
		ShowSuggestedVisualization: false,
		UseFormattedResponse:       false,
	}
}

func TestFormatPlainText(t *testing.T) {
	result := Result{
		GeneratedQuery:  "SELECT * FROM orders LIMIT 1000",
		Explanation:     "Lists all orders",
		Warnings:        []string{"large table"},
		RowLimitApplied: true,
		Success:         true,
	}
	out := Format(result, responseConfig())

	if !strings.HasPrefix(out, "SELECT * FROM orders LIMIT 1000") {
		t.Fatalf("output does not start with the query:\n%s", out)
	}
	if !strings.Contains(out, "-- Explanation:\n-- Lists all orders") {
		t.Fatalf("explanation missing:\n%s", out)
	}
	if !strings.Contains(out, "-- Warning: large table") {
		t.Fatalf("singular warning missing:\n%s", out)
	}
	if !strings.Contains(out, "-- Note: Row limit was automatically applied") {
		t.Fatalf("row limit note missing:\n%s", out)
	}
}

func TestFormatPlainTextMultipleWarnings(t *testing.T) {
	result := Result{
		GeneratedQuery: "SELECT 1",
		Warnings:       []string{"first", "second"},
		Success:        true,
	}
	out := Format(result, responseConfig())

	if !strings.Contains(out, "-- Warnings:") {
		t.Fatalf("plural header missing:\n%s", out)
	}
	if !strings.Contains(out, "--   1. first") || !strings.Contains(out, "--   2. second") {
		t.Fatalf("numbered list missing:\n%s", out)
	}
}

func TestFormatPlainTextRespectsShowFlags(t *testing.T) {
	result := Result{
		GeneratedQuery:         "SELECT 1",
		Explanation:            "trivial",
		Warnings:               []string{"w"},
		SuggestedVisualization: "bar",
		Success:                true,
	}
	cfg := responseConfig()
	cfg.ShowExplanation = false
	cfg.ShowWarnings = false
	cfg.ShowSuggestedVisualization = false

	out := Format(result, cfg)
	if out != "SELECT 1" {
		t.Fatalf("output = %q, want bare query", out)
	}

	cfg.ShowSuggestedVisualization = true
	out = Format(result, cfg)
	if !strings.Contains(out, "-- Suggested Visualization:\n-- bar") {
		t.Fatalf("visualization missing:\n%s", out)
	}
}

func TestFormatJSON(t *testing.T) {
	result := Result{
		GeneratedQuery:         "SELECT 1",
		Explanation:            "trivial",
		Warnings:               []string{"w"},
		SuggestedVisualization: "table",
		RowLimitApplied:        true,
		Success:                true,
	}
	cfg := responseConfig()
	cfg.UseFormattedResponse = true
	cfg.ShowSuggestedVisualization = true

	out := Format(result, cfg)

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded["query"] != "SELECT 1" || decoded["success"] != true {
		t.Fatalf("decoded = %v", decoded)
	}
	if decoded["explanation"] != "trivial" {
		t.Fatalf("explanation = %v", decoded["explanation"])
	}
	if decoded["suggested_visualization"] != "table" {
		t.Fatalf("visualization = %v", decoded["suggested_visualization"])
	}
	if decoded["row_limit_applied"] != true {
		t.Fatalf("row_limit_applied = %v", decoded["row_limit_applied"])
	}
}

func TestFormatJSONOmitsDisabledAndEmptyFields(t *testing.T) {
	result := Result{
		GeneratedQuery: "SELECT 1",
		Explanation:    "trivial",
		Warnings:       []string{"w"},
		Success:        true,
	}
	cfg := responseConfig()
	cfg.UseFormattedResponse = true
	cfg.ShowExplanation = false
	cfg.ShowWarnings = false

	out := Format(result, cfg)

	// Disabled fields are absent, not null or empty.
	for _, key := range []string{"explanation", "warnings", "suggested_visualization", "row_limit_applied"} {
		if strings.Contains(out, `"`+key+`"`) {
			t.Fatalf("field %q should be omitted:\n%s", key, out)
		}
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	result := Result{
		GeneratedQuery: "SELECT 1",
		Explanation:    "trivial",
		Success:        true,
	}
	cfg := responseConfig()
	first := Format(result, cfg)
	for i := 0; i < 3; i++ {
		if got := Format(result, cfg); got != first {
			t.Fatalf("Format output changed between calls:\n%s\nvs\n%s", first, got)
		}
	}
}
