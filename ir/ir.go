package ir

import (
	"fmt"
	"strings"
)

// EditStatus tags a column or index snapshot with how it changed relative to the
// previous snapshot of the same table. The empty value means unchanged.
type EditStatus string

const (
	EditStatusUnchanged EditStatus = ""
	EditStatusAdded     EditStatus = "ADD"
	EditStatusModified  EditStatus = "MODIFY"
	EditStatusDeleted   EditStatus = "DELETE"
)

// ParseEditStatus accepts the canonical tags as well as the verbose spellings
// (added, modified, deleted) in any case.
func ParseEditStatus(s string) (EditStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "UNCHANGED", "NONE":
		return EditStatusUnchanged, nil
	case "ADD", "ADDED":
		return EditStatusAdded, nil
	case "MODIFY", "MODIFIED", "RENAME", "RENAMED":
		return EditStatusModified, nil
	case "DELETE", "DELETED", "DROP":
		return EditStatusDeleted, nil
	}
	return EditStatusUnchanged, fmt.Errorf("unknown edit status %q", s)
}

// IsBlank reports whether the status carries no change.
func (s EditStatus) IsBlank() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Database describes a database (schema) for CREATE DATABASE
type Database struct {
	Name      string `json:"name" yaml:"name"`
	Charset   string `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collation string `json:"collation,omitempty" yaml:"collation,omitempty"`
}

// Table is a point-in-time snapshot of a table definition. Old and new
// snapshots of the same logical table are compared to produce ALTER TABLE.
type Table struct {
	Name         string    `json:"name" yaml:"name"`
	DatabaseName string    `json:"database_name,omitempty" yaml:"database_name,omitempty"`
	Columns      []*Column `json:"columns" yaml:"columns"`
	Indexes      []*Index  `json:"indexes,omitempty" yaml:"indexes,omitempty"`
	Engine       string    `json:"engine,omitempty" yaml:"engine,omitempty"`
	Charset      string    `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collate      string    `json:"collate,omitempty" yaml:"collate,omitempty"`
	Increment    *int64    `json:"increment,omitempty" yaml:"increment,omitempty"` // AUTO_INCREMENT start value
	Comment      string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Partition    string    `json:"partition,omitempty" yaml:"partition,omitempty"` // raw partition clause
}

// Column represents a table column. Its ordinal position is its index in Table.Columns.
type Column struct {
	Name          string     `json:"name" yaml:"name"`
	OldName       string     `json:"old_name,omitempty" yaml:"old_name,omitempty"`
	ColumnType    string     `json:"column_type" yaml:"column_type"` // e.g. varchar(255), int unsigned
	Nullable      bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	DefaultValue  string     `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Comment       string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	EditStatus    EditStatus `json:"edit_status,omitempty" yaml:"edit_status,omitempty"`
	AutoIncrement bool       `json:"auto_increment,omitempty" yaml:"auto_increment,omitempty"`
	Charset       string     `json:"charset,omitempty" yaml:"charset,omitempty"`
	Collation     string     `json:"collation,omitempty" yaml:"collation,omitempty"`
}

// Index represents an index or key on a table
type Index struct {
	Name       string     `json:"name" yaml:"name"`
	OldName    string     `json:"old_name,omitempty" yaml:"old_name,omitempty"`
	Type       string     `json:"type" yaml:"type"` // primary, unique, normal, fulltext, spatial
	Columns    []string   `json:"columns" yaml:"columns"`
	Method     string     `json:"method,omitempty" yaml:"method,omitempty"` // BTREE, HASH
	Comment    string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	EditStatus EditStatus `json:"edit_status,omitempty" yaml:"edit_status,omitempty"`
}

// Default value sentinels understood by the renderers
const (
	DefaultNull        = "NULL"
	DefaultEmptyString = "EMPTY_STRING"
)

// ColumnNames returns the names of the table's columns in order, skipping nil entries
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c == nil {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Column returns the column with the given name, or nil
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c != nil && c.Name == name {
			return c
		}
	}
	return nil
}

// PriorName returns the name this column had in the previous snapshot.
// Columns without an explicit OldName that were not just added are assumed
// to keep their name.
func (c *Column) PriorName() string {
	if strings.TrimSpace(c.OldName) != "" {
		return c.OldName
	}
	if c.EditStatus == EditStatusAdded {
		return ""
	}
	return c.Name
}

// Renamed reports whether a column carries a prior name that differs from its current one
func (c *Column) Renamed() bool {
	return strings.TrimSpace(c.OldName) != "" && c.OldName != c.Name
}

// Clone returns a deep copy of the table. Nil column and index entries stay nil.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := *t
	if t.Increment != nil {
		v := *t.Increment
		out.Increment = &v
	}
	if t.Columns != nil {
		out.Columns = make([]*Column, len(t.Columns))
		for i, c := range t.Columns {
			if c == nil {
				continue
			}
			cc := *c
			out.Columns[i] = &cc
		}
	}
	if t.Indexes != nil {
		out.Indexes = make([]*Index, len(t.Indexes))
	}
	for i, idx := range t.Indexes {
		if idx == nil {
			continue
		}
		ic := *idx
		ic.Columns = append([]string(nil), idx.Columns...)
		out.Indexes[i] = &ic
	}
	return &out
}
