// prompt.go assembles the schema-grounded prompt for one request.
//
// Any failure while gathering schema context is swallowed: the prompt
// still gets built, only with less grounding. Degraded grounding
// beats pipeline failure here — the parser's safety layer is the real
// backstop against bad output, not the prompt.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgquill/pgquill/applog"
	"github.com/pgquill/pgquill/db"
)

// maxDetailedTables caps how many tables get full column/index
// detail appended to the prompt, keeping prompt growth bounded.
const maxDetailedTables = 3

// BuildPrompt combines the user's request with live schema context.
// catalog may be nil (no database connection); the prompt then
// carries the request alone.
func BuildPrompt(ctx context.Context, catalog Catalog, naturalLanguage string) string {
	var prompt strings.Builder
	prompt.WriteString("Generate a PostgreSQL query for this request:\n\n")
	prompt.WriteString("Request: " + naturalLanguage + "\n")

	schemaContext := buildSchemaContext(ctx, catalog, naturalLanguage)
	if schemaContext != "" {
		prompt.WriteString("Schema info:\n" + schemaContext + "\n")
	}

	return prompt.String()
}

func buildSchemaContext(ctx context.Context, catalog Catalog, naturalLanguage string) string {
	if catalog == nil {
		return ""
	}

	tables, err := catalog.ListTables(ctx)
	if err != nil {
		applog.Warning("schema context unavailable: %v", err)
		return ""
	}

	schemaContext := formatSchemaForAI(tables)

	// Cheap relevance pass: a table gets detailed only when its name
	// appears verbatim in the request, first few matches in catalog
	// order.
	detailed := 0
	for _, t := range tables {
		if detailed >= maxDetailedTables {
			break
		}
		if !strings.Contains(naturalLanguage, t.TableName) {
			continue
		}
		details, err := catalog.TableDetails(ctx, t.TableName, t.SchemaName)
		if err != nil {
			applog.Warning("table details for %s unavailable: %v", t.TableName, err)
			continue
		}
		schemaContext += "\n" + formatTableDetailsForAI(details)
		detailed++
	}

	return schemaContext
}

// formatSchemaForAI renders the full table listing and tells the
// model these are the only queryable tables.
func formatSchemaForAI(tables []db.TableInfo) string {
	var sb strings.Builder
	sb.WriteString("=== DATABASE SCHEMA ===\n")
	sb.WriteString("IMPORTANT: These are the ONLY tables available in this database:\n\n")

	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("- %s.%s (%s, ~%d rows)\n",
			t.SchemaName, t.TableName, t.TableType, t.EstimatedRows))
	}
	if len(tables) == 0 {
		sb.WriteString("- No user tables found in database\n")
	}

	sb.WriteString("\nCRITICAL: If the user asks for tables not listed above, return an error with available table names.\n")
	sb.WriteString("Do NOT query information_schema or pg_catalog tables.\n")
	return sb.String()
}

// formatTableDetailsForAI renders one table's columns and indexes.
func formatTableDetailsForAI(details *db.TableDetails) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== TABLE: %s.%s ===\n\n", details.SchemaName, details.TableName))

	sb.WriteString("COLUMNS:\n")
	for _, col := range details.Columns {
		sb.WriteString(fmt.Sprintf("- %s (%s)", col.Name, col.DataType))
		if col.IsPrimaryKey {
			sb.WriteString(" [PRIMARY KEY]")
		}
		if col.IsForeignKey {
			sb.WriteString(fmt.Sprintf(" [FK -> %s.%s]", col.ForeignTable, col.ForeignColumn))
		}
		if !col.IsNullable {
			sb.WriteString(" [NOT NULL]")
		}
		if col.Default != "" {
			sb.WriteString(" [DEFAULT: " + col.Default + "]")
		}
		sb.WriteString("\n")
	}

	if len(details.Indexes) > 0 {
		sb.WriteString("\nINDEXES:\n")
		for _, idx := range details.Indexes {
			sb.WriteString("- " + idx + "\n")
		}
	}

	return sb.String()
}
