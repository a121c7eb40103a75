// formatter.go renders a Result for the caller, either as a compact
// structured payload or as an annotated SQL text block.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pgquill/pgquill/config"
)

// jsonResponse is the structured output schema. Optional fields are
// omitted entirely (not emitted as null/empty) when their show-flag
// is off or the value is empty/false.
type jsonResponse struct {
	Query                  string   `json:"query"`
	Success                bool     `json:"success"`
	Explanation            string   `json:"explanation,omitempty"`
	Warnings               []string `json:"warnings,omitempty"`
	SuggestedVisualization string   `json:"suggested_visualization,omitempty"`
	RowLimitApplied        bool     `json:"row_limit_applied,omitempty"`
}

// Format renders result per the response configuration. Formatting is
// pure: the same result/config pair always yields identical output.
func Format(result Result, cfg config.Configuration) string {
	if cfg.UseFormattedResponse {
		return formatJSON(result, cfg)
	}
	return formatPlainText(result, cfg)
}

func formatJSON(result Result, cfg config.Configuration) string {
	resp := jsonResponse{
		Query:           result.GeneratedQuery,
		Success:         result.Success,
		RowLimitApplied: result.RowLimitApplied,
	}
	if cfg.ShowExplanation {
		resp.Explanation = result.Explanation
	}
	if cfg.ShowWarnings {
		resp.Warnings = result.Warnings
	}
	if cfg.ShowSuggestedVisualization {
		resp.SuggestedVisualization = result.SuggestedVisualization
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		// The struct contains only strings, bools, and string slices.
		return fmt.Sprintf(`{"query": %q, "success": %v}`, result.GeneratedQuery, result.Success)
	}
	return string(out)
}

func formatPlainText(result Result, cfg config.Configuration) string {
	var out strings.Builder

	out.WriteString(result.GeneratedQuery)

	if cfg.ShowExplanation && result.Explanation != "" {
		out.WriteString("\n\n-- Explanation:\n-- " + result.Explanation)
	}

	if cfg.ShowWarnings && len(result.Warnings) > 0 {
		out.WriteString("\n\n" + formatWarnings(result.Warnings))
	}

	if cfg.ShowSuggestedVisualization && result.SuggestedVisualization != "" {
		out.WriteString("\n\n-- Suggested Visualization:\n-- " + result.SuggestedVisualization)
	}

	if result.RowLimitApplied {
		out.WriteString("\n\n-- Note: Row limit was automatically applied to this query for safety")
	}

	return out.String()
}

// formatWarnings uses the singular form for exactly one warning and a
// numbered list otherwise.
func formatWarnings(warnings []string) string {
	if len(warnings) == 1 {
		return "-- Warning: " + warnings[0]
	}
	var out strings.Builder
	out.WriteString("-- Warnings:")
	for i, w := range warnings {
		out.WriteString(fmt.Sprintf("\n--   %d. %s", i+1, w))
	}
	return out.String()
}
