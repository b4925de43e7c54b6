// Package ddl defines the dialect-agnostic contract for generating DDL text
// from table and database snapshots. Dialect packages provide the renderers
// and resolvers; the builder assembles their output into statements.
package ddl

import (
	"github.com/ddlforge/ddlforge/ir"
)

// ColumnRenderer renders the clauses for one column type
type ColumnRenderer interface {
	// Definition renders the full column clause used inside CREATE TABLE
	Definition(column *ir.Column) string
	// Modify renders the ALTER TABLE clause for the column's edit status
	Modify(column *ir.Column) string
	// Bare renders name, type and modifiers without a leading keyword, for positional clauses
	Bare(column *ir.Column) string
}

// IndexRenderer renders the clauses for one index kind
type IndexRenderer interface {
	// Definition renders the inline key clause used inside CREATE TABLE
	Definition(index *ir.Index) string
	// Modify renders the ALTER TABLE clause for the index's edit status
	Modify(index *ir.Index) string
}

// ColumnTypeResolver maps a semantic column type such as "varchar(255)" to its renderer
type ColumnTypeResolver interface {
	ResolveColumn(columnType string) (ColumnRenderer, error)
}

// IndexTypeResolver maps a semantic index kind such as "primary" to its renderer
type IndexTypeResolver interface {
	ResolveIndex(indexType string) (IndexRenderer, error)
}

// Builder produces DDL text for one SQL dialect. Implementations are pure:
// they never mutate their inputs and hold no state across calls.
type Builder interface {
	CreateTable(table *ir.Table) (string, error)
	// ModifyTable returns the ALTER TABLE script turning oldTable into newTable,
	// or "" when there is nothing to change.
	ModifyTable(oldTable, newTable *ir.Table) (string, error)
	CreateDatabase(database *ir.Database) (string, error)
	// PageLimit appends a pagination clause to sql. pageNo is accepted for
	// symmetry with callers that paginate by page; offset is used as given.
	PageLimit(sql string, offset, pageNo, pageSize int) string
}
