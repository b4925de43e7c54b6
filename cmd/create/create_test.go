package create

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const ordersYAML = `name: orders
engine: InnoDB
columns:
  - name: id
    column_type: int
  - name: total
    column_type: decimal(10,2)
indexes:
  - name: PRIMARY
    type: primary
    columns: [id]
`

const shopJSON = `{"name": "customers", "database_name": "shop", "columns": [{"name": "email", "column_type": "varchar(255)"}]}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func runWith(t *testing.T, files ...string) (string, error) {
	t.Helper()
	createFiles = files
	createOutput = "stdout"
	t.Cleanup(func() { createFiles = nil })

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := runCreate(cmd, nil)
	return buf.String(), err
}

func TestRunCreate(t *testing.T) {
	orders := writeFile(t, "orders.yaml", ordersYAML)
	customers := writeFile(t, "customers.json", shopJSON)

	got, err := runWith(t, orders, customers)
	if err != nil {
		t.Fatalf("runCreate() returned error: %v", err)
	}

	expected := "CREATE TABLE `orders` (\n\t`id` INT NOT NULL,\n\t`total` DECIMAL(10,2) NOT NULL,\n\tPRIMARY KEY (`id`)\n) ENGINE=InnoDB;\n\n" +
		"CREATE TABLE `shop`.`customers` (\n\t`email` VARCHAR(255) NOT NULL\n);\n"
	if got != expected {
		t.Errorf("runCreate() output = %q; want %q", got, expected)
	}
}

func TestRunCreateUnknownType(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "name: t\ncolumns:\n  - name: x\n    column_type: not_a_type\n")

	got, err := runWith(t, bad)
	if !errors.Is(err, ddl.ErrUnknownColumnType) {
		t.Fatalf("runCreate() error = %v; want ErrUnknownColumnType", err)
	}
	if got != "" {
		t.Errorf("runCreate() wrote %q on failure", got)
	}
}

func TestRunCreateHonoursIgnoreFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	ignoreFile := writeFile(t, ".ddlforgeignore", "[tables]\npatterns = [\"customers\"]\n\n[indexes]\npatterns = [\"PRIMARY\"]\n")
	viper.Set(util.KeyIgnoreFile, ignoreFile)

	orders := writeFile(t, "orders.yaml", ordersYAML)
	customers := writeFile(t, "customers.json", shopJSON)

	got, err := runWith(t, orders, customers)
	if err != nil {
		t.Fatalf("runCreate() returned error: %v", err)
	}

	expected := "CREATE TABLE `orders` (\n\t`id` INT NOT NULL,\n\t`total` DECIMAL(10,2) NOT NULL\n) ENGINE=InnoDB;\n"
	if got != expected {
		t.Errorf("runCreate() output = %q; want %q", got, expected)
	}
}
