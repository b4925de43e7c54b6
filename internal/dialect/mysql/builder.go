// Package mysql implements the MySQL DDL dialect: its column and index type
// tables, and a Builder for CREATE TABLE, ALTER TABLE, CREATE DATABASE and
// LIMIT pagination.
package mysql

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/internal/logger"
	"github.com/ddlforge/ddlforge/ir"
)

// Builder generates MySQL DDL. It holds only configuration and is safe for
// concurrent use.
type Builder struct {
	columnTypes ddl.ColumnTypeResolver
	indexTypes  ddl.IndexTypeResolver
	reorderMode ReorderMode
	logger      *slog.Logger
}

var _ ddl.Builder = (*Builder)(nil)

// Option configures a Builder
type Option func(*Builder)

// WithColumnTypes replaces the column type resolver
func WithColumnTypes(r ddl.ColumnTypeResolver) Option {
	return func(b *Builder) { b.columnTypes = r }
}

// WithIndexTypes replaces the index type resolver
func WithIndexTypes(r ddl.IndexTypeResolver) Option {
	return func(b *Builder) { b.indexTypes = r }
}

// WithReorderMode selects how column moves are detected in ModifyTable
func WithReorderMode(mode ReorderMode) Option {
	return func(b *Builder) { b.reorderMode = mode }
}

// WithLogger sets the logger used for debug output. Defaults to the global logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a MySQL builder using the full MySQL type tables unless overridden
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		columnTypes: NewColumnTypes(),
		indexTypes:  NewIndexTypes(),
		reorderMode: ReorderSimulated,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) log() *slog.Logger {
	if b.logger != nil {
		return b.logger
	}
	return logger.Get()
}

// CreateTable renders a CREATE TABLE statement. Columns and indexes with a
// blank name or type are skipped; a table left with no columns is rejected.
func (b *Builder) CreateTable(table *ir.Table) (string, error) {
	if table == nil || ddl.IsBlank(table.Name) {
		return "", fmt.Errorf("%w: table name is required", ddl.ErrMalformedTable)
	}

	var definitions []string

	for _, column := range table.Columns {
		if column == nil || ddl.IsBlank(column.Name) || ddl.IsBlank(column.ColumnType) {
			b.log().Debug("Skipping column without name or type", "table", table.Name)
			continue
		}
		renderer, err := b.columnTypes.ResolveColumn(column.ColumnType)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", column.Name, err)
		}
		definitions = append(definitions, renderer.Definition(column))
	}

	if len(definitions) == 0 {
		return "", fmt.Errorf("%w: table %q has no renderable columns", ddl.ErrMalformedTable, table.Name)
	}

	for _, index := range table.Indexes {
		if index == nil || ddl.IsBlank(index.Name) || ddl.IsBlank(index.Type) {
			b.log().Debug("Skipping index without name or type", "table", table.Name)
			continue
		}
		renderer, err := b.indexTypes.ResolveIndex(index.Type)
		if err != nil {
			return "", fmt.Errorf("index %q: %w", index.Name, err)
		}
		definitions = append(definitions, renderer.Definition(index))
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(ir.QualifyName(table.DatabaseName, table.Name))
	sb.WriteString(" (\n\t")
	sb.WriteString(strings.Join(definitions, ",\n\t"))
	sb.WriteString("\n)")
	sb.WriteString(tableOptions(table))
	sb.WriteString(";")

	return sb.String(), nil
}

// tableOptions renders the trailing table options in their fixed order
func tableOptions(table *ir.Table) string {
	var sb strings.Builder
	if !ddl.IsBlank(table.Engine) {
		sb.WriteString(" ENGINE=" + table.Engine)
	}
	if !ddl.IsBlank(table.Charset) {
		sb.WriteString(" DEFAULT CHARACTER SET=" + table.Charset)
	}
	if !ddl.IsBlank(table.Collate) {
		sb.WriteString(" COLLATE=" + table.Collate)
	}
	if table.Increment != nil {
		sb.WriteString(" AUTO_INCREMENT=" + strconv.FormatInt(*table.Increment, 10))
	}
	if !ddl.IsBlank(table.Comment) {
		sb.WriteString(" COMMENT=" + ir.QuoteString(table.Comment))
	}
	if !ddl.IsBlank(table.Partition) {
		sb.WriteString("\n" + strings.TrimSpace(table.Partition))
	}
	return sb.String()
}

// ModifyTable renders the ALTER TABLE script that turns oldTable into newTable.
//
// Table-level changes, column edits and index edits go into a single ALTER
// TABLE statement on the old name. Column moves follow as one statement each,
// in ascending target position, against the new name. Returns "" when no
// clause was produced.
//
// Table names are compared case-insensitively; table comments are compared
// exactly, so a comment that differs only in case is rewritten.
func (b *Builder) ModifyTable(oldTable, newTable *ir.Table) (string, error) {
	if oldTable == nil || newTable == nil || ddl.IsBlank(oldTable.Name) || ddl.IsBlank(newTable.Name) {
		return "", fmt.Errorf("%w: both old and new table names are required", ddl.ErrMalformedTable)
	}

	var clauses []string

	if !strings.EqualFold(oldTable.Name, newTable.Name) {
		clauses = append(clauses, "RENAME TO "+ir.QuoteIdentifier(newTable.Name))
	}
	if oldTable.Comment != newTable.Comment {
		clauses = append(clauses, "COMMENT="+ir.QuoteString(newTable.Comment))
	}
	if incrementChanged(oldTable.Increment, newTable.Increment) {
		clauses = append(clauses, "AUTO_INCREMENT="+strconv.FormatInt(*newTable.Increment, 10))
	}

	for _, column := range newTable.Columns {
		if column == nil || column.EditStatus.IsBlank() || ddl.IsBlank(column.ColumnType) || ddl.IsBlank(column.Name) {
			continue
		}
		renderer, err := b.columnTypes.ResolveColumn(column.ColumnType)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", column.Name, err)
		}
		clauses = append(clauses, renderer.Modify(column))
	}

	for _, index := range newTable.Indexes {
		if index == nil || index.EditStatus.IsBlank() || ddl.IsBlank(index.Type) {
			continue
		}
		if ddl.IsBlank(index.Name) {
			b.log().Debug("Skipping index edit without name", "table", newTable.Name, "status", string(index.EditStatus))
			continue
		}
		renderer, err := b.indexTypes.ResolveIndex(index.Type)
		if err != nil {
			return "", fmt.Errorf("index %q: %w", index.Name, err)
		}
		clauses = append(clauses, renderer.Modify(index))
	}

	moves, err := b.reorderColumns(oldTable, newTable)
	if err != nil {
		return "", err
	}

	var statements []string
	if len(clauses) > 0 {
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s\n\t%s;",
			ir.QualifyName(oldTable.DatabaseName, oldTable.Name),
			strings.Join(clauses, ",\n\t")))
	}

	target := ir.QualifyName(oldTable.DatabaseName, newTable.Name)
	for _, move := range moves {
		statements = append(statements, fmt.Sprintf("ALTER TABLE %s %s;", target, move))
	}

	if len(statements) == 0 {
		b.log().Debug("No changes between table snapshots", "table", oldTable.Name)
		return "", nil
	}
	return ddl.Statements(statements...), nil
}

func incrementChanged(oldValue, newValue *int64) bool {
	if newValue == nil {
		return false
	}
	return oldValue == nil || *oldValue != *newValue
}

// CreateDatabase renders CREATE DATABASE. By convention the statement has no terminator.
func (b *Builder) CreateDatabase(database *ir.Database) (string, error) {
	if database == nil || ddl.IsBlank(database.Name) {
		return "", fmt.Errorf("%w: database name is required", ddl.ErrMalformedDatabase)
	}

	var sb strings.Builder
	sb.WriteString("CREATE DATABASE ")
	sb.WriteString(ir.QuoteIdentifier(database.Name))
	if !ddl.IsBlank(database.Charset) {
		sb.WriteString(" DEFAULT CHARACTER SET=" + database.Charset)
	}
	if !ddl.IsBlank(database.Collation) {
		sb.WriteString(" COLLATE=" + database.Collation)
	}
	return sb.String(), nil
}

// PageLimit appends "LIMIT pageSize" or "LIMIT offset,pageSize" to sql.
// pageNo is not consulted; use ddl.Offset to derive offset from a page number.
func (b *Builder) PageLimit(sql string, offset, pageNo, pageSize int) string {
	var sb strings.Builder
	sb.Grow(len(sql) + 24)
	sb.WriteString(sql)
	sb.WriteString("\n LIMIT ")
	if offset != 0 {
		sb.WriteString(strconv.Itoa(offset))
		sb.WriteString(",")
	}
	sb.WriteString(strconv.Itoa(pageSize))
	return sb.String()
}
