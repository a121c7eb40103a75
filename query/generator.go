// generator.go orchestrates one request end to end: validate, select
// a provider, ground the prompt, call the model, parse the output.
//
// Every failure comes back as a Result/ExplainResult-shaped outcome —
// the caller always gets a structured, inspectable value, never a
// panic or a bare error.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgquill/pgquill/ai"
	"github.com/pgquill/pgquill/applog"
	"github.com/pgquill/pgquill/config"
)

// clientFactory matches ai.NewClient; tests substitute fakes.
type clientFactory func(ai.SelectionResult, config.Configuration) (ai.Client, error)

// Generator runs the generation pipeline. It is stateless per
// request: the only shared state is the read-only config store and
// the catalog handle.
type Generator struct {
	store     *config.Store
	catalog   Catalog
	newClient clientFactory
}

// NewGenerator creates a Generator. catalog may be nil when no
// database is reachable; prompts then go out ungrounded.
func NewGenerator(store *config.Store, catalog Catalog) *Generator {
	return &Generator{
		store:     store,
		catalog:   catalog,
		newClient: ai.NewClient,
	}
}

// GenerateQuery turns a natural-language request into a validated
// query result.
func (g *Generator) GenerateQuery(ctx context.Context, req Request) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error("panic during query generation: %v", r)
			result = failure(fmt.Sprintf("Internal error: %v", r))
		}
	}()

	cfg := g.store.Get()

	if msg := validateNaturalLanguage(req.NaturalLanguage, cfg.MaxQueryLength); msg != "" {
		return failure(msg)
	}

	sel := ai.SelectProvider(g.store, req.APIKey, req.Provider)
	if !sel.Success {
		return failure(sel.ErrorMessage)
	}

	client, err := g.newClient(sel, cfg)
	if err != nil {
		return failure(err.Error())
	}

	prompt := BuildPrompt(ctx, g.catalog, req.NaturalLanguage)
	model, maxTokens, temperature := ai.ModelSettings(sel)
	applog.Info("using model %s (max_tokens=%d, temperature=%.2f)", model, maxTokens, temperature)

	opts := ai.GenerateOptions{
		Model:        model,
		SystemPrompt: ai.GenerationSystemPrompt(cfg.EnforceLimit, cfg.DefaultLimit),
		Prompt:       prompt,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	}

	ai.LogRequest("GenerateQuery", client.Name(), map[string]string{
		"Request": req.NaturalLanguage,
		"Prompt":  prompt,
	})
	text, err := client.GenerateText(ctx, opts)
	ai.LogResponse("GenerateQuery", text, err)

	if err != nil {
		return failure("AI API error: " + ai.FormatAPIError(err.Error()))
	}
	if text == "" {
		return failure("Empty response from AI service")
	}

	return ParseResponse(text, cfg.AllowSystemTables)
}

// ExplainQuery runs the query under EXPLAIN ANALYZE and asks the
// selected provider for a performance analysis of the plan.
func (g *Generator) ExplainQuery(ctx context.Context, req ExplainRequest) (result ExplainResult) {
	defer func() {
		if r := recover(); r != nil {
			applog.Error("panic during explain: %v", r)
			result = ExplainResult{ErrorMessage: fmt.Sprintf("Internal error: %v", r)}
		}
	}()

	if strings.TrimSpace(req.QueryText) == "" {
		return ExplainResult{ErrorMessage: "Query text cannot be empty"}
	}
	if g.catalog == nil {
		return ExplainResult{ErrorMessage: "No database connection available for EXPLAIN"}
	}

	result.Query = req.QueryText

	plan, err := g.catalog.Explain(ctx, req.QueryText)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("Failed to execute EXPLAIN query: %v", err)
		return result
	}
	result.ExplainOutput = plan

	sel := ai.SelectProvider(g.store, req.APIKey, req.Provider)
	if !sel.Success {
		result.ErrorMessage = sel.ErrorMessage
		return result
	}

	cfg := g.store.Get()
	client, err := g.newClient(sel, cfg)
	if err != nil {
		result.ErrorMessage = err.Error()
		return result
	}

	prompt := fmt.Sprintf(
		"Please analyze this PostgreSQL EXPLAIN ANALYZE output:\n\nQuery:\n%s\n\nEXPLAIN Output:\n%s",
		req.QueryText, plan)
	model, maxTokens, temperature := ai.ModelSettings(sel)

	opts := ai.GenerateOptions{
		Model:        model,
		SystemPrompt: ai.ExplainSystemPrompt(),
		Prompt:       prompt,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
	}

	ai.LogRequest("ExplainQuery", client.Name(), map[string]string{
		"Query":          req.QueryText,
		"Explain Output": plan,
	})
	text, err := client.GenerateText(ctx, opts)
	ai.LogResponse("ExplainQuery", text, err)

	if err != nil {
		result.ErrorMessage = "AI API error: " + ai.FormatAPIError(err.Error())
		return result
	}
	if text == "" {
		result.ErrorMessage = "Empty response from AI service"
		return result
	}

	result.AIExplanation = text
	result.Success = true
	return result
}

// validateNaturalLanguage rejects empty or oversized requests before
// any network interaction. Returns an error message, or "" when the
// input is acceptable.
func validateNaturalLanguage(text string, maxLength int) string {
	if strings.TrimSpace(text) == "" {
		return "Natural language query cannot be empty"
	}
	if maxLength > 0 && len(text) > maxLength {
		return fmt.Sprintf("Query too long. Maximum %d characters allowed. Your query: %d characters.",
			maxLength, len(text))
	}
	return ""
}
