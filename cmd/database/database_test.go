package database

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/spf13/cobra"
)

func run(t *testing.T) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := runDatabase(cmd, nil)
	return buf.String(), err
}

func reset(t *testing.T) {
	t.Cleanup(func() {
		databaseName, databaseCharset, databaseCollation, databaseFile = "", "", "", ""
	})
}

func TestRunDatabaseFromFlags(t *testing.T) {
	reset(t)
	databaseName = "shop"
	databaseCharset = "utf8mb4"

	got, err := run(t)
	if err != nil {
		t.Fatalf("runDatabase() returned error: %v", err)
	}
	if expected := "CREATE DATABASE `shop` DEFAULT CHARACTER SET=utf8mb4\n"; got != expected {
		t.Errorf("runDatabase() = %q; want %q", got, expected)
	}
}

func TestRunDatabaseFromFileWithOverride(t *testing.T) {
	reset(t)
	databaseFile = filepath.Join(t.TempDir(), "db.yaml")
	if err := os.WriteFile(databaseFile, []byte("name: shop\ncharset: latin1\ncollation: latin1_swedish_ci\n"), 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
	databaseCharset = "utf8mb4"
	databaseCollation = "utf8mb4_bin"

	got, err := run(t)
	if err != nil {
		t.Fatalf("runDatabase() returned error: %v", err)
	}
	if expected := "CREATE DATABASE `shop` DEFAULT CHARACTER SET=utf8mb4 COLLATE=utf8mb4_bin\n"; got != expected {
		t.Errorf("runDatabase() = %q; want %q", got, expected)
	}
}

func TestRunDatabaseRequiresName(t *testing.T) {
	reset(t)
	_, err := run(t)
	if !errors.Is(err, ddl.ErrMalformedDatabase) {
		t.Errorf("runDatabase() error = %v; want ErrMalformedDatabase", err)
	}
}
