package mysql

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/ir"
)

// ReorderMode selects how ModifyTable detects moved columns
type ReorderMode int

const (
	// ReorderSimulated replays drops, renames and appended additions over the
	// old column order and emits a positional clause only where the replayed
	// order disagrees with the new one.
	ReorderSimulated ReorderMode = iota

	// ReorderLegacy emits a clause for every column whose new position is
	// greater than the position of its OldName in the old table. A column
	// without an old counterpart counts as position -1, so every added
	// column is repositioned.
	ReorderLegacy
)

// ParseReorderMode parses "simulated" or "legacy"
func ParseReorderMode(s string) (ReorderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "simulated":
		return ReorderSimulated, nil
	case "legacy":
		return ReorderLegacy, nil
	}
	return ReorderSimulated, fmt.Errorf("unknown reorder mode %q (want simulated or legacy)", s)
}

func (m ReorderMode) String() string {
	if m == ReorderLegacy {
		return "legacy"
	}
	return "simulated"
}

// reorderColumns returns the MODIFY COLUMN ... FIRST|AFTER clauses needed to
// arrange the columns in newTable order, in ascending target position. Each
// clause refers to its already repositioned predecessor, so order matters.
func (b *Builder) reorderColumns(oldTable, newTable *ir.Table) ([]string, error) {
	if b.reorderMode == ReorderLegacy {
		return b.legacyReorder(oldTable, newTable)
	}
	return b.simulatedReorder(oldTable, newTable)
}

func (b *Builder) simulatedReorder(oldTable, newTable *ir.Table) ([]string, error) {
	oldNames := renderableNames(oldTable.Columns)

	var target []*ir.Column
	for _, column := range newTable.Columns {
		if renderable(column) && column.EditStatus != ir.EditStatusDeleted {
			target = append(target, column)
		}
	}

	// Surviving old columns keep their relative order under their new names;
	// everything else is appended the way ADD COLUMN appends.
	survivors := make(map[string]string)
	for _, column := range target {
		if prior := column.PriorName(); prior != "" && slices.Contains(oldNames, prior) {
			survivors[prior] = column.Name
		}
	}
	working := make([]string, 0, len(target))
	for _, name := range oldNames {
		if current, ok := survivors[name]; ok {
			working = append(working, current)
		}
	}
	for _, column := range target {
		if prior := column.PriorName(); prior == "" || !slices.Contains(oldNames, prior) {
			working = append(working, column.Name)
		}
	}

	var clauses []string
	for i, column := range target {
		if i < len(working) && working[i] == column.Name {
			continue
		}
		clause, err := b.positionClause(column, target, i)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)

		if from := slices.Index(working, column.Name); from >= 0 {
			working = slices.Delete(working, from, from+1)
		}
		working = slices.Insert(working, min(i, len(working)), column.Name)
	}
	return clauses, nil
}

func (b *Builder) legacyReorder(oldTable, newTable *ir.Table) ([]string, error) {
	oldNames := oldTable.ColumnNames()

	var clauses []string
	for i, column := range newTable.Columns {
		if !renderable(column) || column.EditStatus == ir.EditStatusDeleted {
			continue
		}
		if i <= slices.Index(oldNames, column.OldName) {
			continue
		}
		clause, err := b.positionClause(column, newTable.Columns, i)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// positionClause renders MODIFY COLUMN <bare> FIRST, or AFTER the nearest
// column before position i that still exists once the main statement has run
func (b *Builder) positionClause(column *ir.Column, order []*ir.Column, i int) (string, error) {
	renderer, err := b.columnTypes.ResolveColumn(column.ColumnType)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", column.Name, err)
	}

	position := "FIRST"
	for p := i - 1; p >= 0; p-- {
		if renderable(order[p]) && order[p].EditStatus != ir.EditStatusDeleted {
			position = "AFTER " + ir.QuoteIdentifier(order[p].Name)
			break
		}
	}
	b.log().Debug("Repositioning column", "column", column.Name, "position", position, "mode", b.reorderMode.String())

	return "MODIFY COLUMN " + renderer.Bare(column) + " " + position, nil
}

func renderable(column *ir.Column) bool {
	return column != nil && !ddl.IsBlank(column.Name) && !ddl.IsBlank(column.ColumnType)
}

func renderableNames(columns []*ir.Column) []string {
	var names []string
	for _, column := range columns {
		if renderable(column) {
			names = append(names, column.Name)
		}
	}
	return names
}
