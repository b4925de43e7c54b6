// Package ignore filters tables, columns and indexes out of snapshots using
// glob patterns from a .ddlforgeignore TOML file.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ddlforge/ddlforge/ir"
)

const (
	// IgnoreFileName is the default name of the ignore file
	IgnoreFileName = ".ddlforgeignore"
)

// Config holds the ignore patterns per object kind. Patterns support the *
// wildcard and negation with a leading !.
type Config struct {
	Tables  []string
	Columns []string
	Indexes []string
}

// tomlConfig represents the TOML structure of the ignore file
type tomlConfig struct {
	Tables  patternList `toml:"tables,omitempty"`
	Columns patternList `toml:"columns,omitempty"`
	Indexes patternList `toml:"indexes,omitempty"`
}

type patternList struct {
	Patterns []string `toml:"patterns,omitempty"`
}

// Load loads the ignore file at filePath.
// Returns nil if the file doesn't exist (ignore functionality is optional)
func Load(filePath string) (*Config, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var raw tomlConfig
	if _, err := toml.DecodeFile(filePath, &raw); err != nil {
		return nil, err
	}

	return &Config{
		Tables:  raw.Tables.Patterns,
		Columns: raw.Columns.Patterns,
		Indexes: raw.Indexes.Patterns,
	}, nil
}

// ShouldIgnoreTable checks if a table should be ignored based on the patterns
func (c *Config) ShouldIgnoreTable(tableName string) bool {
	if c == nil {
		return false
	}
	return shouldIgnore(tableName, c.Tables)
}

// ShouldIgnoreColumn checks a column by its bare name or as table.column
func (c *Config) ShouldIgnoreColumn(tableName, columnName string) bool {
	if c == nil {
		return false
	}
	return shouldIgnore(columnName, c.Columns) || shouldIgnore(tableName+"."+columnName, c.Columns)
}

// ShouldIgnoreIndex checks an index by its bare name or as table.index
func (c *Config) ShouldIgnoreIndex(tableName, indexName string) bool {
	if c == nil {
		return false
	}
	return shouldIgnore(indexName, c.Indexes) || shouldIgnore(tableName+"."+indexName, c.Indexes)
}

// FilterTable returns a copy of table without ignored columns and indexes.
// The input is never modified; a nil config returns the table unchanged.
func (c *Config) FilterTable(table *ir.Table) *ir.Table {
	if c == nil || table == nil || (len(c.Columns) == 0 && len(c.Indexes) == 0) {
		return table
	}

	out := table.Clone()
	var columns []*ir.Column
	for _, column := range out.Columns {
		if column != nil && c.ShouldIgnoreColumn(table.Name, column.Name) {
			continue
		}
		columns = append(columns, column)
	}
	out.Columns = columns

	var indexes []*ir.Index
	for _, index := range out.Indexes {
		if index != nil && c.ShouldIgnoreIndex(table.Name, index.Name) {
			continue
		}
		indexes = append(indexes, index)
	}
	out.Indexes = indexes

	return out
}

// shouldIgnore checks if a name should be ignored based on the patterns.
// Negation patterns (starting with !) take precedence over inclusion patterns
func shouldIgnore(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	matched := false
	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			continue
		}
		if matchPattern(pattern, name) {
			matched = true
			break
		}
	}

	for _, pattern := range patterns {
		if !strings.HasPrefix(pattern, "!") {
			continue
		}
		if matchPattern(pattern[1:], name) {
			return false
		}
	}

	return matched
}

// matchPattern matches a glob-style pattern, falling back to a literal match
// when the pattern is malformed
func matchPattern(pattern, name string) bool {
	matched, err := filepath.Match(pattern, name)
	if err != nil {
		return pattern == name
	}
	return matched
}
