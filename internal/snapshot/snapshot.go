// Package snapshot loads table and database snapshots from JSON or YAML files.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ddlforge/ddlforge/ir"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a table snapshot from a .json, .yaml or .yml file
func LoadTable(path string) (*ir.Table, error) {
	var table ir.Table
	if err := decodeFile(path, &table); err != nil {
		return nil, err
	}
	if err := normalizeTable(&table); err != nil {
		return nil, fmt.Errorf("invalid table snapshot %s: %w", path, err)
	}
	return &table, nil
}

// LoadTables reads several table snapshots, stopping at the first failure
func LoadTables(paths []string) ([]*ir.Table, error) {
	tables := make([]*ir.Table, 0, len(paths))
	for _, path := range paths {
		table, err := LoadTable(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// LoadDatabase reads a database snapshot from a .json, .yaml or .yml file
func LoadDatabase(path string) (*ir.Database, error) {
	var database ir.Database
	if err := decodeFile(path, &database); err != nil {
		return nil, err
	}
	return &database, nil
}

// ApplyDefaultDatabase returns a copy of table qualified with databaseName
// when the table has no qualifier of its own. The input is never modified.
func ApplyDefaultDatabase(table *ir.Table, databaseName string) *ir.Table {
	if table == nil || strings.TrimSpace(table.DatabaseName) != "" || strings.TrimSpace(databaseName) == "" {
		return table
	}
	out := table.Clone()
	out.DatabaseName = databaseName
	return out
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse JSON snapshot %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to parse YAML snapshot %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported snapshot format %q for %s (want .json, .yaml or .yml)", ext, path)
	}
	return nil
}

// normalizeTable rewrites edit status spellings to their canonical tags
func normalizeTable(table *ir.Table) error {
	for _, column := range table.Columns {
		if column == nil {
			continue
		}
		status, err := ir.ParseEditStatus(string(column.EditStatus))
		if err != nil {
			return fmt.Errorf("column %q: %w", column.Name, err)
		}
		column.EditStatus = status
	}
	for _, index := range table.Indexes {
		if index == nil {
			continue
		}
		status, err := ir.ParseEditStatus(string(index.EditStatus))
		if err != nil {
			return fmt.Errorf("index %q: %w", index.Name, err)
		}
		index.EditStatus = status
	}
	return nil
}
