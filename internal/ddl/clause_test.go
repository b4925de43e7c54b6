package ddl

import (
	"testing"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		name     string
		pageNo   int
		pageSize int
		expected int
	}{
		{"first page", 1, 20, 0},
		{"third page", 3, 20, 40},
		{"page zero", 0, 20, 0},
		{"negative page", -2, 20, 0},
		{"zero size", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Offset(tt.pageNo, tt.pageSize); got != tt.expected {
				t.Errorf("Offset(%d, %d) = %d; want %d", tt.pageNo, tt.pageSize, got, tt.expected)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	got := Statements("ALTER TABLE `a` RENAME TO `b`;", "  ", "", "ALTER TABLE `b` MODIFY COLUMN `x` INT NOT NULL FIRST;\n")
	expected := "ALTER TABLE `a` RENAME TO `b`;\nALTER TABLE `b` MODIFY COLUMN `x` INT NOT NULL FIRST;"
	if got != expected {
		t.Errorf("Statements() = %q; want %q", got, expected)
	}
	if got := Statements(); got != "" {
		t.Errorf("Statements() with no input = %q; want empty", got)
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n"} {
		if !IsBlank(s) {
			t.Errorf("IsBlank(%q) = false; want true", s)
		}
	}
	if IsBlank(" x ") {
		t.Errorf("IsBlank(%q) = true; want false", " x ")
	}
}
