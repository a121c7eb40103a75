// catalog.go answers the metadata questions behind prompt grounding:
// which tables exist, what their columns and indexes look like, and
// how a query actually executes.
package db

import (
	"context"
	"fmt"
)

// TableInfo is one row of the database-wide table listing.
type TableInfo struct {
	TableName     string
	SchemaName    string
	TableType     string
	EstimatedRows int64
}

// ColumnInfo describes a single column, including key participation.
type ColumnInfo struct {
	Name          string
	DataType      string
	IsNullable    bool
	Default       string
	IsPrimaryKey  bool
	IsForeignKey  bool
	ForeignTable  string
	ForeignColumn string
}

// TableDetails holds complete schema information for one table.
type TableDetails struct {
	TableName  string
	SchemaName string
	Columns    []ColumnInfo
	Indexes    []string // full index definitions from pg_indexes
}

// ListTables enumerates user tables with estimated row counts,
// excluding the system schemas.
func (d *DB) ListTables(ctx context.Context) ([]TableInfo, error) {
	const query = `
		SELECT
			t.table_name,
			t.table_schema,
			t.table_type,
			COALESCE(s.n_tup_ins + s.n_tup_upd + s.n_tup_del, 0) AS estimated_rows
		FROM information_schema.tables t
		LEFT JOIN pg_stat_user_tables s
		  ON t.table_name = s.relname AND t.table_schema = s.schemaname
		WHERE t.table_schema NOT IN ('information_schema', 'pg_catalog')
		  AND t.table_type = 'BASE TABLE'
		ORDER BY t.table_schema, t.table_name`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableInfo
	for rows.Next() {
		var t TableInfo
		if err := rows.Scan(&t.TableName, &t.SchemaName, &t.TableType, &t.EstimatedRows); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// TableDetails fetches columns (with PK/FK participation) and index
// definitions for one table. schema defaults to "public".
func (d *DB) TableDetails(ctx context.Context, table, schema string) (*TableDetails, error) {
	if schema == "" {
		schema = "public"
	}
	details := &TableDetails{TableName: table, SchemaName: schema}

	const columnQuery = `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			COALESCE(c.column_default, ''),
			pk.column_name IS NOT NULL AS is_primary_key,
			fk.column_name IS NOT NULL AS is_foreign_key,
			COALESCE(fk.foreign_table_name, ''),
			COALESCE(fk.foreign_column_name, '')
		FROM information_schema.columns c
		LEFT JOIN (
			SELECT kcu.column_name, kcu.table_name, kcu.table_schema
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON tc.constraint_name = kcu.constraint_name
			  AND tc.table_schema = kcu.table_schema
			WHERE tc.constraint_type = 'PRIMARY KEY'
		) pk ON c.column_name = pk.column_name
		  AND c.table_name = pk.table_name
		  AND c.table_schema = pk.table_schema
		LEFT JOIN (
			SELECT
				kcu.column_name, kcu.table_name, kcu.table_schema,
				ccu.table_name AS foreign_table_name,
				ccu.column_name AS foreign_column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
			  ON tc.constraint_name = kcu.constraint_name
			  AND tc.table_schema = kcu.table_schema
			JOIN information_schema.constraint_column_usage ccu
			  ON ccu.constraint_name = tc.constraint_name
			  AND ccu.table_schema = tc.table_schema
			WHERE tc.constraint_type = 'FOREIGN KEY'
		) fk ON c.column_name = fk.column_name
		  AND c.table_name = fk.table_name
		  AND c.table_schema = fk.table_schema
		WHERE c.table_name = $1 AND c.table_schema = $2
		ORDER BY c.ordinal_position`

	rows, err := d.Pool.Query(ctx, columnQuery, table, schema)
	if err != nil {
		return nil, fmt.Errorf("describe %s.%s: %w", schema, table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col ColumnInfo
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable, &col.Default,
			&col.IsPrimaryKey, &col.IsForeignKey, &col.ForeignTable, &col.ForeignColumn); err != nil {
			return nil, err
		}
		col.IsNullable = nullable == "YES"
		details.Columns = append(details.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	const indexQuery = `
		SELECT indexdef
		FROM pg_indexes
		WHERE tablename = $1 AND schemaname = $2
		ORDER BY indexname`

	idxRows, err := d.Pool.Query(ctx, indexQuery, table, schema)
	if err != nil {
		return nil, fmt.Errorf("indexes %s.%s: %w", schema, table, err)
	}
	defer idxRows.Close()

	for idxRows.Next() {
		var def string
		if err := idxRows.Scan(&def); err != nil {
			return nil, err
		}
		details.Indexes = append(details.Indexes, def)
	}
	return details, idxRows.Err()
}

// Explain runs EXPLAIN ANALYZE with full instrumentation and returns
// the JSON plan document.
func (d *DB) Explain(ctx context.Context, sql string) (string, error) {
	explainSQL := "EXPLAIN (ANALYZE, VERBOSE, COSTS, SETTINGS, BUFFERS, FORMAT JSON) " + sql

	var plan string
	if err := d.Pool.QueryRow(ctx, explainSQL).Scan(&plan); err != nil {
		return "", fmt.Errorf("explain: %w", err)
	}
	return plan, nil
}
