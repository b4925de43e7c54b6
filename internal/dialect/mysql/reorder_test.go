package mysql

import (
	"regexp"
	"slices"
	"testing"

	"github.com/ddlforge/ddlforge/ir"
	"github.com/google/go-cmp/cmp"
)

func intColumns(names ...string) []*ir.Column {
	columns := make([]*ir.Column, 0, len(names))
	for _, name := range names {
		columns = append(columns, &ir.Column{Name: name, OldName: name, ColumnType: "int"})
	}
	return columns
}

func TestParseReorderMode(t *testing.T) {
	tests := []struct {
		input   string
		want    ReorderMode
		wantErr bool
	}{
		{"", ReorderSimulated, false},
		{"simulated", ReorderSimulated, false},
		{"Legacy", ReorderLegacy, false},
		{"random", ReorderSimulated, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReorderMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReorderMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseReorderMode(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReorderColumns(t *testing.T) {
	tests := []struct {
		name      string
		old       []*ir.Column
		new       []*ir.Column
		simulated []string
		legacy    []string
	}{
		{
			name: "unchanged order",
			old:  intColumns("a", "b", "c"),
			new:  intColumns("a", "b", "c"),
		},
		{
			name:      "last column moves first",
			old:       intColumns("a", "b", "c"),
			new:       intColumns("c", "a", "b"),
			simulated: []string{"MODIFY COLUMN `c` INT NOT NULL FIRST"},
			legacy: []string{
				"MODIFY COLUMN `a` INT NOT NULL AFTER `c`",
				"MODIFY COLUMN `b` INT NOT NULL AFTER `a`",
			},
		},
		{
			name:      "first column moves last",
			old:       intColumns("a", "b", "c"),
			new:       intColumns("b", "c", "a"),
			simulated: []string{"MODIFY COLUMN `b` INT NOT NULL FIRST", "MODIFY COLUMN `c` INT NOT NULL AFTER `b`"},
			legacy:    []string{"MODIFY COLUMN `a` INT NOT NULL AFTER `c`"},
		},
		{
			name:      "swap middle pair",
			old:       intColumns("a", "b", "c", "d"),
			new:       intColumns("a", "c", "b", "d"),
			simulated: []string{"MODIFY COLUMN `c` INT NOT NULL AFTER `a`"},
			legacy:    []string{"MODIFY COLUMN `b` INT NOT NULL AFTER `c`"},
		},
		{
			name: "added column at the end",
			old:  intColumns("a", "b"),
			new: append(intColumns("a", "b"),
				&ir.Column{Name: "c", ColumnType: "int", EditStatus: ir.EditStatusAdded}),
			legacy: []string{"MODIFY COLUMN `c` INT NOT NULL AFTER `b`"},
		},
		{
			name: "added column in the middle",
			old:  intColumns("a", "b"),
			new: []*ir.Column{
				{Name: "a", OldName: "a", ColumnType: "int"},
				{Name: "c", ColumnType: "int", EditStatus: ir.EditStatusAdded},
				{Name: "b", OldName: "b", ColumnType: "int"},
			},
			simulated: []string{"MODIFY COLUMN `c` INT NOT NULL AFTER `a`"},
			legacy:    []string{"MODIFY COLUMN `c` INT NOT NULL AFTER `a`", "MODIFY COLUMN `b` INT NOT NULL AFTER `c`"},
		},
		{
			name: "added column first",
			old:  intColumns("a"),
			new: []*ir.Column{
				{Name: "z", ColumnType: "int", EditStatus: ir.EditStatusAdded},
				{Name: "a", OldName: "a", ColumnType: "int"},
			},
			simulated: []string{"MODIFY COLUMN `z` INT NOT NULL FIRST"},
			legacy:    []string{"MODIFY COLUMN `z` INT NOT NULL FIRST", "MODIFY COLUMN `a` INT NOT NULL AFTER `z`"},
		},
		{
			name: "deleted column is not repositioned",
			old:  intColumns("a", "b", "c"),
			new: []*ir.Column{
				{Name: "a", OldName: "a", ColumnType: "int"},
				{Name: "b", OldName: "b", ColumnType: "int", EditStatus: ir.EditStatusDeleted},
				{Name: "c", OldName: "c", ColumnType: "int"},
			},
		},
		{
			name: "added column after a deleted one",
			old:  intColumns("a", "b"),
			new: []*ir.Column{
				{Name: "a", OldName: "a", ColumnType: "int"},
				{Name: "b", OldName: "b", ColumnType: "int", EditStatus: ir.EditStatusDeleted},
				{Name: "c", ColumnType: "int", EditStatus: ir.EditStatusAdded},
			},
			legacy: []string{"MODIFY COLUMN `c` INT NOT NULL AFTER `a`"},
		},
		{
			name: "renamed column moved first",
			old:  intColumns("a", "b"),
			new: []*ir.Column{
				{Name: "b2", OldName: "b", ColumnType: "int", EditStatus: ir.EditStatusModified},
				{Name: "a", OldName: "a", ColumnType: "int"},
			},
			simulated: []string{"MODIFY COLUMN `b2` INT NOT NULL FIRST"},
			legacy:    []string{"MODIFY COLUMN `a` INT NOT NULL AFTER `b2`"},
		},
	}

	for _, tt := range tests {
		oldTable := &ir.Table{Name: "t", Columns: tt.old}
		newTable := &ir.Table{Name: "t", Columns: tt.new}

		t.Run(tt.name+"/simulated", func(t *testing.T) {
			got, err := newTestBuilder().reorderColumns(oldTable, newTable)
			if err != nil {
				t.Fatalf("reorderColumns() returned error: %v", err)
			}
			if diff := cmp.Diff(tt.simulated, got); diff != "" {
				t.Errorf("simulated reorder mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run(tt.name+"/legacy", func(t *testing.T) {
			got, err := newTestBuilder(WithReorderMode(ReorderLegacy)).reorderColumns(oldTable, newTable)
			if err != nil {
				t.Fatalf("reorderColumns() returned error: %v", err)
			}
			if diff := cmp.Diff(tt.legacy, got); diff != "" {
				t.Errorf("legacy reorder mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var movePattern = regexp.MustCompile("^MODIFY COLUMN `(\\w+)` .* (?:FIRST|AFTER `(\\w+)`)$")

// replay applies positional clauses to an initial column order, the way
// MySQL would execute them one after another.
func replay(t *testing.T, initial []string, moves []string) []string {
	t.Helper()
	order := append([]string(nil), initial...)
	for _, move := range moves {
		m := movePattern.FindStringSubmatch(move)
		if m == nil {
			t.Fatalf("cannot parse move %q", move)
		}
		name, anchor := m[1], m[2]

		order = slices.DeleteFunc(order, func(c string) bool { return c == name })
		at := 0
		if anchor != "" {
			at = slices.Index(order, anchor) + 1
		}
		order = slices.Insert(order, at, name)
	}
	return order
}

func TestSimulatedReorderReachesTargetOrder(t *testing.T) {
	permutations := [][]string{
		{"a", "b", "c", "d", "e"},
		{"e", "d", "c", "b", "a"},
		{"b", "a", "d", "c", "e"},
		{"c", "e", "a", "b", "d"},
		{"a", "e", "b", "c", "d"},
		{"d", "a", "b", "c", "e"},
	}
	initial := []string{"a", "b", "c", "d", "e"}

	for _, target := range permutations {
		oldTable := &ir.Table{Name: "t", Columns: intColumns(initial...)}
		newTable := &ir.Table{Name: "t", Columns: intColumns(target...)}

		moves, err := newTestBuilder().reorderColumns(oldTable, newTable)
		if err != nil {
			t.Fatalf("reorderColumns() returned error: %v", err)
		}
		if got := replay(t, initial, moves); !cmp.Equal(got, target) {
			t.Errorf("replaying %q over %v gave %v; want %v", moves, initial, got, target)
		}
	}
}

func TestModifyTableEmitsMovesAsSeparateStatements(t *testing.T) {
	oldTable := &ir.Table{Name: "t", DatabaseName: "db", Columns: intColumns("a", "b", "c")}
	newTable := &ir.Table{Name: "t2", DatabaseName: "db", Columns: intColumns("c", "b", "a")}

	got, err := newTestBuilder().ModifyTable(oldTable, newTable)
	if err != nil {
		t.Fatalf("ModifyTable() returned error: %v", err)
	}
	expected := "ALTER TABLE `db`.`t`\n\tRENAME TO `t2`;\n" +
		"ALTER TABLE `db`.`t2` MODIFY COLUMN `c` INT NOT NULL FIRST;\n" +
		"ALTER TABLE `db`.`t2` MODIFY COLUMN `b` INT NOT NULL AFTER `c`;"
	if got != expected {
		t.Errorf("ModifyTable() = %q; want %q", got, expected)
	}
}

func TestModifyTableMoveOnly(t *testing.T) {
	oldTable := &ir.Table{Name: "t", Columns: intColumns("a", "b", "c")}
	newTable := &ir.Table{Name: "t", Columns: intColumns("c", "a", "b")}

	got, err := newTestBuilder().ModifyTable(oldTable, newTable)
	if err != nil {
		t.Fatalf("ModifyTable() returned error: %v", err)
	}
	if expected := "ALTER TABLE `t` MODIFY COLUMN `c` INT NOT NULL FIRST;"; got != expected {
		t.Errorf("ModifyTable() = %q; want %q", got, expected)
	}
}

func TestLegacyModifyTableNeverAnchorsOnDroppedColumn(t *testing.T) {
	oldTable := &ir.Table{Name: "t", Columns: intColumns("a", "b")}
	newTable := &ir.Table{Name: "t", Columns: []*ir.Column{
		{Name: "a", OldName: "a", ColumnType: "int"},
		{Name: "b", OldName: "b", ColumnType: "int", EditStatus: ir.EditStatusDeleted},
		{Name: "c", ColumnType: "int", EditStatus: ir.EditStatusAdded},
	}}

	got, err := newTestBuilder(WithReorderMode(ReorderLegacy)).ModifyTable(oldTable, newTable)
	if err != nil {
		t.Fatalf("ModifyTable() returned error: %v", err)
	}
	expected := "ALTER TABLE `t`\n\tDROP COLUMN `b`,\n\tADD COLUMN `c` INT NOT NULL;\n" +
		"ALTER TABLE `t` MODIFY COLUMN `c` INT NOT NULL AFTER `a`;"
	if got != expected {
		t.Errorf("ModifyTable() = %q; want %q", got, expected)
	}
}
