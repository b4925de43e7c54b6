package util

import (
	"fmt"
	"io"
	"os"

	"github.com/ddlforge/ddlforge/internal/dialect/mysql"
	"github.com/ddlforge/ddlforge/internal/ignore"
	"github.com/ddlforge/ddlforge/internal/logger"
	"github.com/spf13/viper"
)

// Config keys shared by the root command and its subcommands
const (
	KeyReorderMode = "reorder_mode"
	KeyDatabase    = "database"
	KeyIgnoreFile  = "ignore_file"
)

// NewBuilderFromConfig creates a MySQL builder using the reorder mode from
// flags, environment or config file
func NewBuilderFromConfig() (*mysql.Builder, error) {
	mode, err := mysql.ParseReorderMode(viper.GetString(KeyReorderMode))
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("Creating MySQL builder", "reorder_mode", mode.String())
	return mysql.NewBuilder(mysql.WithReorderMode(mode), mysql.WithLogger(logger.Get())), nil
}

// DefaultDatabase returns the configured qualifier for snapshots without one
func DefaultDatabase() string {
	return viper.GetString(KeyDatabase)
}

// LoadIgnoreConfig loads the configured ignore file, or .ddlforgeignore in the
// working directory. A missing file yields a nil config that ignores nothing.
func LoadIgnoreConfig() (*ignore.Config, error) {
	path := viper.GetString(KeyIgnoreFile)
	if path == "" {
		path = ignore.IgnoreFileName
	}
	config, err := ignore.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return config, nil
}

// WriteOutput writes content to w when target is "stdout" or empty, otherwise to the file at target
func WriteOutput(w io.Writer, target, content string) error {
	if target == "" || target == "stdout" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output to %s: %w", target, err)
	}
	return nil
}
