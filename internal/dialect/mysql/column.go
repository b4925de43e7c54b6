package mysql

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/ir"
)

// defaultStyle controls how a column's DEFAULT value is rendered
type defaultStyle int

const (
	// defaultRaw emits the value verbatim (numbers, bit literals)
	defaultRaw defaultStyle = iota
	// defaultQuoted emits the value as a string literal
	defaultQuoted
	// defaultTemporal quotes literals but leaves functions such as CURRENT_TIMESTAMP bare
	defaultTemporal
	// defaultExpressionOnly only accepts a parenthesised expression (BLOB, TEXT, JSON, spatial)
	defaultExpressionOnly
)

// columnType is one entry of the MySQL column type table
type columnType struct {
	name          string
	numeric       bool // accepts UNSIGNED
	charset       bool // accepts CHARACTER SET / COLLATE
	autoIncrement bool
	defaults      defaultStyle
}

var _ ddl.ColumnRenderer = (*columnType)(nil)

// columnTypeTable lists every column type keyword MySQL accepts in a column definition
var columnTypeTable = []columnType{
	// Numeric
	{name: "BIT", defaults: defaultRaw},
	{name: "TINYINT", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "SMALLINT", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "MEDIUMINT", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "INT", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "INTEGER", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "BIGINT", numeric: true, autoIncrement: true, defaults: defaultRaw},
	{name: "DECIMAL", numeric: true, defaults: defaultRaw},
	{name: "DEC", numeric: true, defaults: defaultRaw},
	{name: "NUMERIC", numeric: true, defaults: defaultRaw},
	{name: "FLOAT", numeric: true, defaults: defaultRaw},
	{name: "DOUBLE", numeric: true, defaults: defaultRaw},
	{name: "DOUBLE PRECISION", numeric: true, defaults: defaultRaw},
	{name: "REAL", numeric: true, defaults: defaultRaw},
	{name: "BOOL", defaults: defaultRaw},
	{name: "BOOLEAN", defaults: defaultRaw},

	// Date and time
	{name: "DATE", defaults: defaultTemporal},
	{name: "DATETIME", defaults: defaultTemporal},
	{name: "TIMESTAMP", defaults: defaultTemporal},
	{name: "TIME", defaults: defaultTemporal},
	{name: "YEAR", defaults: defaultTemporal},

	// String
	{name: "CHAR", charset: true, defaults: defaultQuoted},
	{name: "VARCHAR", charset: true, defaults: defaultQuoted},
	{name: "BINARY", defaults: defaultQuoted},
	{name: "VARBINARY", defaults: defaultQuoted},
	{name: "TINYBLOB", defaults: defaultExpressionOnly},
	{name: "BLOB", defaults: defaultExpressionOnly},
	{name: "MEDIUMBLOB", defaults: defaultExpressionOnly},
	{name: "LONGBLOB", defaults: defaultExpressionOnly},
	{name: "TINYTEXT", charset: true, defaults: defaultExpressionOnly},
	{name: "TEXT", charset: true, defaults: defaultExpressionOnly},
	{name: "MEDIUMTEXT", charset: true, defaults: defaultExpressionOnly},
	{name: "LONGTEXT", charset: true, defaults: defaultExpressionOnly},
	{name: "ENUM", charset: true, defaults: defaultQuoted},
	{name: "SET", charset: true, defaults: defaultQuoted},

	// JSON
	{name: "JSON", defaults: defaultExpressionOnly},

	// Spatial
	{name: "GEOMETRY", defaults: defaultExpressionOnly},
	{name: "POINT", defaults: defaultExpressionOnly},
	{name: "LINESTRING", defaults: defaultExpressionOnly},
	{name: "POLYGON", defaults: defaultExpressionOnly},
	{name: "MULTIPOINT", defaults: defaultExpressionOnly},
	{name: "MULTILINESTRING", defaults: defaultExpressionOnly},
	{name: "MULTIPOLYGON", defaults: defaultExpressionOnly},
	{name: "GEOMETRYCOLLECTION", defaults: defaultExpressionOnly},
}

// ColumnTypes resolves MySQL column types to their renderers
type ColumnTypes struct {
	types map[string]*columnType
}

var _ ddl.ColumnTypeResolver = (*ColumnTypes)(nil)

// NewColumnTypes returns a resolver over the full MySQL column type table
func NewColumnTypes() *ColumnTypes {
	r := &ColumnTypes{types: make(map[string]*columnType, len(columnTypeTable))}
	for i := range columnTypeTable {
		t := columnTypeTable[i]
		r.types[t.name] = &t
	}
	return r
}

// ResolveColumn looks up the renderer for a column type such as "varchar(255)"
// or "decimal(10,2) unsigned zerofill". Matching is case-insensitive on the
// type keywords and ignores parenthesised arguments.
func (r *ColumnTypes) ResolveColumn(columnType string) (ddl.ColumnRenderer, error) {
	key, unsigned := baseTypeKey(columnType)
	if t, ok := r.types[key]; ok && (!unsigned || t.numeric) {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ddl.ErrUnknownColumnType, columnType)
}

// baseTypeKey reduces a column type to its upper-cased keywords, e.g.
// "decimal(10, 2) unsigned" -> ("DECIMAL", true)
func baseTypeKey(columnType string) (string, bool) {
	var words []string
	unsigned := false
	for _, w := range strings.Fields(strings.ToUpper(stripArguments(columnType))) {
		switch w {
		case "UNSIGNED":
			unsigned = true
		case "SIGNED", "ZEROFILL":
		default:
			words = append(words, w)
		}
	}
	return strings.Join(words, " "), unsigned
}

// stripArguments removes every parenthesised segment, honouring quoted values
// such as enum('a(b)', 'c')
func stripArguments(s string) string {
	var sb strings.Builder
	depth := 0
	var quote rune
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			if depth > 0 {
				quote = r
			} else {
				sb.WriteRune(r)
			}
		case r == '(':
			depth++
			sb.WriteRune(' ')
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// typeText renders the column type with keywords upper-cased and arguments
// left as written: "decimal(10,2) unsigned" -> "DECIMAL(10,2) UNSIGNED"
func typeText(columnType string) string {
	var sb strings.Builder
	depth := 0
	var quote rune
	pendingSpace := false
	for _, r := range strings.TrimSpace(columnType) {
		if quote != 0 {
			sb.WriteRune(r)
			if r == quote {
				quote = 0
			}
			continue
		}
		if depth == 0 && unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			if r != '(' {
				sb.WriteByte(' ')
			}
			pendingSpace = false
		}
		switch {
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			r = unicode.ToUpper(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Definition renders the column clause for CREATE TABLE
func (t *columnType) Definition(column *ir.Column) string {
	return t.Bare(column)
}

// Bare renders `name` TYPE followed by the column modifiers
func (t *columnType) Bare(column *ir.Column) string {
	parts := []string{ir.QuoteIdentifier(column.Name), typeText(column.ColumnType)}

	if t.charset {
		if !ddl.IsBlank(column.Charset) {
			parts = append(parts, "CHARACTER SET "+column.Charset)
		}
		if !ddl.IsBlank(column.Collation) {
			parts = append(parts, "COLLATE "+column.Collation)
		}
	}

	if column.Nullable {
		parts = append(parts, "NULL")
	} else {
		parts = append(parts, "NOT NULL")
	}

	if def := t.defaultClause(column.DefaultValue); def != "" {
		parts = append(parts, def)
	}

	if t.autoIncrement && column.AutoIncrement {
		parts = append(parts, "AUTO_INCREMENT")
	}

	if !ddl.IsBlank(column.Comment) {
		parts = append(parts, "COMMENT "+ir.QuoteString(column.Comment))
	}

	return strings.Join(parts, " ")
}

// Modify renders the ALTER TABLE clause for the column's edit status
func (t *columnType) Modify(column *ir.Column) string {
	switch column.EditStatus {
	case ir.EditStatusAdded:
		return "ADD COLUMN " + t.Definition(column)
	case ir.EditStatusDeleted:
		return "DROP COLUMN " + ir.QuoteIdentifier(column.Name)
	}
	if column.Renamed() {
		return "CHANGE COLUMN " + ir.QuoteIdentifier(column.OldName) + " " + t.Definition(column)
	}
	return "MODIFY COLUMN " + t.Definition(column)
}

func (t *columnType) defaultClause(value string) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		return ""
	case strings.EqualFold(value, ir.DefaultNull):
		return "DEFAULT NULL"
	case strings.EqualFold(value, ir.DefaultEmptyString):
		return "DEFAULT ''"
	}

	switch t.defaults {
	case defaultQuoted:
		return "DEFAULT " + quoteLiteral(value)
	case defaultTemporal:
		if isExpression(value) || isTemporalFunction(value) {
			return "DEFAULT " + value
		}
		return "DEFAULT " + quoteLiteral(value)
	case defaultExpressionOnly:
		if isExpression(value) {
			return "DEFAULT " + value
		}
		return ""
	}
	return "DEFAULT " + value
}

// quoteLiteral quotes value unless it already is a single-quoted literal
func quoteLiteral(value string) string {
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		return value
	}
	return ir.QuoteString(value)
}

func isExpression(value string) bool {
	return strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")")
}

var temporalFunctions = []string{
	"CURRENT_TIMESTAMP",
	"CURRENT_DATE",
	"CURRENT_TIME",
	"LOCALTIMESTAMP",
	"LOCALTIME",
	"NOW(",
	"UTC_TIMESTAMP",
}

func isTemporalFunction(value string) bool {
	upper := strings.ToUpper(value)
	for _, fn := range temporalFunctions {
		if strings.HasPrefix(upper, fn) {
			return true
		}
	}
	return false
}
