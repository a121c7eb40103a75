// parser.go is the trust boundary of the pipeline: it extracts a
// structured payload from raw model text of unknown shape and decides
// whether the result can be handed to the caller.
//
// Model output is adversarial by nature — unstructured, inconsistent,
// sometimes claiming success while describing a failure — so parsing
// is an ordered fallback chain and every safety check is a
// conservative substring heuristic with its token lists kept as
// reviewable constants below.
package query

import (
	"encoding/json"
	"regexp"
	"strings"
)

// rawFallbackExplanation marks a payload synthesized from
// unstructured model text.
const rawFallbackExplanation = "Raw output (no structured payload detected)"

// restrictedCatalogMessage replaces the model's explanation when a
// generated query targets a reserved namespace; the attempted query
// is deliberately not echoed back.
const restrictedCatalogMessage = "Generated query accesses restricted system catalogs " +
	"(information_schema/pg_catalog). Please query user tables only."

// restrictedCatalogTokens are the reserved namespaces generated
// queries must not touch. Matching is a case-insensitive substring
// search, favoring false positives over false negatives.
var restrictedCatalogTokens = []string{
	"information_schema",
	"pg_catalog",
}

// explanationErrorIndicators are phrases that signal the model could
// not generate a usable query, scanned case-insensitively against the
// explanation.
var explanationErrorIndicators = []string{
	// Explicit failure statements
	"cannot generate query",
	"cannot create query",
	"unable to generate",
	// Missing schema elements
	"does not exist",
	"do not exist",
	// Database-style error messages
	"table not found",
	"column not found",
	"no such table",
	"no such column",
}

// warningErrorIndicators is the narrower set scanned against each
// warning string; some models put failure signals there instead of
// the explanation.
var warningErrorIndicators = []string{
	"error:",
	"does not exist",
	"do not exist",
}

// Payload is the loosely-typed record a model is asked to emit.
type Payload struct {
	SQL                    string
	Explanation            string
	Warnings               []string
	RowLimitApplied        bool
	SuggestedVisualization string
	// Raw is true when the payload was synthesized from unstructured
	// text rather than decoded.
	Raw bool
}

// payloadJSON is the wire shape; Warnings stays raw so that both
// array and single-string forms decode without error.
type payloadJSON struct {
	SQL                    string          `json:"sql"`
	Explanation            string          `json:"explanation"`
	Warnings               json.RawMessage `json:"warnings"`
	RowLimitApplied        bool            `json:"row_limit_applied"`
	SuggestedVisualization string          `json:"suggested_visualization"`
}

// fencedJSONPattern matches a ```json fenced block (the tag is
// optional and case-insensitive) containing a {...} object.
var fencedJSONPattern = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractPayload pulls a structured payload out of raw model text.
// The chain is: fenced JSON block, then the whole text as JSON, then
// a synthetic payload treating the text as raw SQL. It never fails —
// raw SQL-looking text from a model is still usable.
func ExtractPayload(text string) Payload {
	if p, ok := extractFencedPayload(text); ok {
		return p
	}
	if p, ok := decodePayload(text); ok {
		return p
	}
	return Payload{SQL: text, Explanation: rawFallbackExplanation, Raw: true}
}

func extractFencedPayload(text string) (Payload, bool) {
	m := fencedJSONPattern.FindStringSubmatch(text)
	if m == nil {
		return Payload{}, false
	}
	return decodePayload(m[1])
}

func decodePayload(text string) (Payload, bool) {
	var pj payloadJSON
	if err := json.Unmarshal([]byte(text), &pj); err != nil {
		return Payload{}, false
	}
	return Payload{
		SQL:                    pj.SQL,
		Explanation:            pj.Explanation,
		Warnings:               normalizeWarnings(pj.Warnings),
		RowLimitApplied:        pj.RowLimitApplied,
		SuggestedVisualization: pj.SuggestedVisualization,
	}, true
}

// normalizeWarnings accepts an array of strings or a single string;
// any other shape (or absence) yields an empty list, never an error.
func normalizeWarnings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return nil
}

// AccessesRestrictedCatalogs reports whether sql touches a reserved
// catalog namespace. Intentionally crude: no SQL parsing, any literal
// occurrence anywhere in the text trips the check, including inside
// string literals or comments.
func AccessesRestrictedCatalogs(sql string) bool {
	lower := strings.ToLower(sql)
	for _, token := range restrictedCatalogTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// HasErrorIndicators reports whether the explanation or any warning
// carries a model-declared failure signal.
func HasErrorIndicators(explanation string, warnings []string) bool {
	lowerExplanation := strings.ToLower(explanation)
	for _, phrase := range explanationErrorIndicators {
		if strings.Contains(lowerExplanation, phrase) {
			return true
		}
	}
	for _, warning := range warnings {
		lowerWarning := strings.ToLower(warning)
		for _, phrase := range warningErrorIndicators {
			if strings.Contains(lowerWarning, phrase) {
				return true
			}
		}
	}
	return false
}

// ParseResponse turns raw provider output into a Result. Rules apply
// in strict order, first match wins:
//
//  1. a model-declared failure wins even when sql is non-empty — a
//     model that explains a failure but still emits SQL is not trusted
//  2. empty sql with no error signals is a legitimate "no query
//     needed" success
//  3. restricted-catalog access fails closed unless explicitly
//     allowed, with the explanation replaced by a fixed policy message
//  4. otherwise the payload passes through
func ParseResponse(rawText string, allowRestrictedCatalogAccess bool) Result {
	p := ExtractPayload(rawText)

	if HasErrorIndicators(p.Explanation, p.Warnings) {
		return Result{
			Explanation:  p.Explanation,
			Warnings:     p.Warnings,
			Success:      false,
			ErrorMessage: p.Explanation,
		}
	}

	if p.SQL == "" {
		return Result{
			Explanation: p.Explanation,
			Warnings:    p.Warnings,
			Success:     true,
		}
	}

	if AccessesRestrictedCatalogs(p.SQL) && !allowRestrictedCatalogAccess {
		return failure(restrictedCatalogMessage)
	}

	viz := p.SuggestedVisualization
	if viz == "" {
		viz = "table"
	}
	return Result{
		GeneratedQuery:         p.SQL,
		Explanation:            p.Explanation,
		Warnings:               p.Warnings,
		RowLimitApplied:        p.RowLimitApplied,
		SuggestedVisualization: viz,
		Success:                true,
	}
}
