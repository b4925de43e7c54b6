package plan

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/ddlforge/ddlforge/internal/color"
	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/internal/fingerprint"
	"github.com/ddlforge/ddlforge/internal/version"
	"github.com/ddlforge/ddlforge/ir"
)

// Plan represents the migration from one table snapshot to the next
type Plan struct {
	// Table is the qualified name the migration applies to
	Table string `json:"table"`

	// SQL is the DDL produced by the builder, empty when nothing changed
	SQL string `json:"sql"`

	// Changes lists every object the migration touches
	Changes []ObjectChange `json:"changes"`

	SourceFingerprint *fingerprint.TableFingerprint `json:"source_fingerprint,omitempty"`
	TargetFingerprint *fingerprint.TableFingerprint `json:"target_fingerprint,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ObjectChange represents a single change to a table, column or index
type ObjectChange struct {
	Address  string         `json:"address"`
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	Action   string         `json:"action"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// PlanJSON represents the structured JSON output format
type PlanJSON struct {
	Version           string         `json:"version"`
	DdlforgeVersion   string         `json:"ddlforge_version"`
	CreatedAt         time.Time      `json:"created_at"`
	SourceFingerprint string         `json:"source_fingerprint,omitempty"`
	Summary           PlanSummary    `json:"summary"`
	ObjectChanges     []ObjectChange `json:"object_changes"`
	SQL               string         `json:"sql"`
}

// PlanSummary provides counts of changes by type
type PlanSummary struct {
	Add     int                    `json:"add"`
	Change  int                    `json:"change"`
	Destroy int                    `json:"destroy"`
	Total   int                    `json:"total"`
	ByType  map[string]TypeSummary `json:"by_type"`
}

// TypeSummary provides counts for a specific object type
type TypeSummary struct {
	Add     int `json:"add"`
	Change  int `json:"change"`
	Destroy int `json:"destroy"`
}

// ObjectType names the kinds of objects a table migration touches
type ObjectType string

const (
	ObjectTypeTable  ObjectType = "table"
	ObjectTypeColumn ObjectType = "columns"
	ObjectTypeIndex  ObjectType = "indexes"
)

// getObjectOrder returns the display order for object types
func getObjectOrder() []ObjectType {
	return []ObjectType{ObjectTypeTable, ObjectTypeColumn, ObjectTypeIndex}
}

const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
)

// ========== PUBLIC METHODS ==========

// New builds a plan migrating oldTable to newTable. When both snapshots
// fingerprint the same the builder is not invoked and the plan is empty.
func New(builder ddl.Builder, oldTable, newTable *ir.Table) (*Plan, error) {
	if oldTable == nil || newTable == nil {
		return nil, fmt.Errorf("%w: both old and new snapshots are required", ddl.ErrMalformedTable)
	}

	source, err := fingerprint.ComputeFingerprint(oldTable)
	if err != nil {
		return nil, fmt.Errorf("failed to compute source fingerprint: %w", err)
	}
	target, err := fingerprint.ComputeFingerprint(newTable)
	if err != nil {
		return nil, fmt.Errorf("failed to compute target fingerprint: %w", err)
	}

	p := &Plan{
		Table:             ir.QualifyName(oldTable.DatabaseName, oldTable.Name),
		Changes:           []ObjectChange{},
		SourceFingerprint: source,
		TargetFingerprint: target,
		CreatedAt:         time.Now(),
	}
	if fingerprint.Equal(source, target) {
		return p, nil
	}

	sql, err := builder.ModifyTable(oldTable, newTable)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ALTER TABLE for %s: %w", p.Table, err)
	}
	p.SQL = sql
	if sql != "" {
		p.Changes = collectChanges(oldTable, newTable)
	}
	return p, nil
}

// HasAnyChanges reports whether the plan carries any DDL
func (p *Plan) HasAnyChanges() bool {
	return p.SQL != ""
}

// Summary returns the change counts by object type
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{ByType: make(map[string]TypeSummary)}
	for _, change := range p.Changes {
		stats := summary.ByType[change.Type]
		switch change.Action {
		case actionCreate:
			stats.Add++
			summary.Add++
		case actionUpdate:
			stats.Change++
			summary.Change++
		case actionDelete:
			stats.Destroy++
			summary.Destroy++
		}
		summary.ByType[change.Type] = stats
	}
	summary.Total = summary.Add + summary.Change + summary.Destroy
	return summary
}

// HumanColored returns a human-readable summary of the plan with color support
func (p *Plan) HumanColored(enableColor bool) string {
	c := color.New(enableColor)
	var out strings.Builder

	if !p.HasAnyChanges() {
		out.WriteString("No changes detected.\n")
		return out.String()
	}

	summary := p.Summary()
	out.WriteString(c.FormatPlanHeader(summary.Add, summary.Change, summary.Destroy) + "\n\n")

	out.WriteString(c.Bold("Summary by type:") + "\n")
	for _, objType := range getObjectOrder() {
		if s, ok := summary.ByType[string(objType)]; ok {
			out.WriteString(c.FormatSummaryLine(string(objType), s.Add, s.Change, s.Destroy) + "\n")
		}
	}
	out.WriteString("\n")

	for _, objType := range getObjectOrder() {
		if _, ok := summary.ByType[string(objType)]; ok {
			p.writeDetailedChanges(&out, string(objType), c)
		}
	}

	out.WriteString(c.Bold("DDL to be executed:") + "\n")
	out.WriteString(strings.Repeat("-", 50) + "\n\n")
	out.WriteString(p.SQL)
	if !strings.HasSuffix(p.SQL, "\n") {
		out.WriteString("\n")
	}

	return out.String()
}

// ToJSON returns the plan as structured JSON
func (p *Plan) ToJSON() (string, error) {
	planJSON := &PlanJSON{
		Version:         version.PlanFormat(),
		DdlforgeVersion: version.App(),
		CreatedAt:       p.CreatedAt.Truncate(time.Second),
		Summary:         p.Summary(),
		ObjectChanges:   p.Changes,
		SQL:             p.SQL,
	}
	if p.SourceFingerprint != nil {
		planJSON.SourceFingerprint = p.SourceFingerprint.Hash
	}

	data, err := json.MarshalIndent(planJSON, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}
	return string(data), nil
}

// ToSQL returns only the SQL statements, newline terminated
func (p *Plan) ToSQL() string {
	if !p.HasAnyChanges() {
		return ""
	}
	return p.SQL + "\n"
}

// ========== PRIVATE METHODS ==========

func (p *Plan) writeDetailedChanges(out *strings.Builder, objType string, c *color.Color) {
	displayName := strings.ToUpper(objType[:1]) + objType[1:]
	fmt.Fprintf(out, "%s:\n", c.Bold(displayName))

	var changes []ObjectChange
	for _, change := range p.Changes {
		if change.Type == objType {
			changes = append(changes, change)
		}
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Address < changes[j].Address
	})

	for _, change := range changes {
		fmt.Fprintf(out, "  %s %s\n", c.PlanSymbol(change.Action), change.Address)
	}
	out.WriteString("\n")
}

// collectChanges mirrors the clauses ModifyTable emits so the summary
// matches the generated SQL
func collectChanges(oldTable, newTable *ir.Table) []ObjectChange {
	changes := []ObjectChange{}
	table := ir.QualifyName(oldTable.DatabaseName, newTable.Name)

	attributes := map[string]any{}
	if !strings.EqualFold(oldTable.Name, newTable.Name) {
		attributes["renamed_from"] = oldTable.Name
	}
	if oldTable.Comment != newTable.Comment {
		attributes["comment"] = newTable.Comment
	}
	if newTable.Increment != nil && (oldTable.Increment == nil || *oldTable.Increment != *newTable.Increment) {
		attributes["auto_increment"] = *newTable.Increment
	}
	if columnsReordered(oldTable, newTable) {
		attributes["column_order"] = newTable.ColumnNames()
	}
	if len(attributes) > 0 {
		changes = append(changes, ObjectChange{
			Address:  table,
			Type:     string(ObjectTypeTable),
			Name:     newTable.Name,
			Action:   actionUpdate,
			Metadata: attributes,
		})
	}

	for _, column := range newTable.Columns {
		if column == nil || column.EditStatus.IsBlank() || ddl.IsBlank(column.Name) || ddl.IsBlank(column.ColumnType) {
			continue
		}
		change := ObjectChange{
			Address: table + "." + ir.QuoteIdentifier(column.Name),
			Type:    string(ObjectTypeColumn),
			Name:    column.Name,
			Action:  actionFor(column.EditStatus),
		}
		if column.Renamed() && column.EditStatus != ir.EditStatusAdded {
			change.Metadata = map[string]any{"renamed_from": column.OldName}
		}
		changes = append(changes, change)
	}

	for _, index := range newTable.Indexes {
		if index == nil || index.EditStatus.IsBlank() || ddl.IsBlank(index.Name) || ddl.IsBlank(index.Type) {
			continue
		}
		changes = append(changes, ObjectChange{
			Address: table + "." + ir.QuoteIdentifier(index.Name),
			Type:    string(ObjectTypeIndex),
			Name:    index.Name,
			Action:  actionFor(index.EditStatus),
		})
	}

	return changes
}

func actionFor(status ir.EditStatus) string {
	switch status {
	case ir.EditStatusAdded:
		return actionCreate
	case ir.EditStatusDeleted:
		return actionDelete
	default:
		return actionUpdate
	}
}

// columnsReordered reports whether the columns present in both snapshots
// appear in a different relative order
func columnsReordered(oldTable, newTable *ir.Table) bool {
	var kept []string
	for _, column := range newTable.Columns {
		if column == nil || column.EditStatus == ir.EditStatusAdded || column.EditStatus == ir.EditStatusDeleted {
			continue
		}
		kept = append(kept, column.PriorName())
	}

	var before []string
	for _, column := range oldTable.Columns {
		if column != nil && slices.Contains(kept, column.Name) {
			before = append(before, column.Name)
		}
	}
	return !slices.Equal(before, kept)
}
