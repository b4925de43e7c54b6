package create

import (
	"context"
	"fmt"
	"strings"

	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/internal/logger"
	"github.com/ddlforge/ddlforge/internal/snapshot"
	"github.com/ddlforge/ddlforge/ir"
	"github.com/spf13/cobra"
)

var (
	createFiles  []string
	createOutput string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate CREATE TABLE statements",
	Long: `Generate a CREATE TABLE statement for each table snapshot given with --file.
Snapshots may be JSON or YAML. Statements are printed in the order the files were given.`,
	RunE:         runCreate,
	SilenceUsage: true,
}

func init() {
	CreateCmd.Flags().StringArrayVar(&createFiles, "file", nil, "Path to a table snapshot (.json, .yaml, .yml); repeatable")
	CreateCmd.Flags().StringVar(&createOutput, "output", "stdout", "Write statements to stdout or a file path")
	CreateCmd.MarkFlagRequired("file")
}

func runCreate(cmd *cobra.Command, args []string) error {
	builder, err := util.NewBuilderFromConfig()
	if err != nil {
		return err
	}

	tables, err := snapshot.LoadTables(createFiles)
	if err != nil {
		return err
	}
	ignoreConfig, err := util.LoadIgnoreConfig()
	if err != nil {
		return err
	}

	db := util.DefaultDatabase()
	var selected []*ir.Table
	for _, table := range tables {
		if ignoreConfig.ShouldIgnoreTable(table.Name) {
			logger.Get().Debug("Skipping ignored table", "table", table.Name)
			continue
		}
		selected = append(selected, snapshot.ApplyDefaultDatabase(ignoreConfig.FilterTable(table), db))
	}
	tables = selected
	if len(tables) == 0 {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Get().Debug("Rendering CREATE TABLE statements", "tables", len(tables))
	statements, err := ddl.RenderCreateTables(ctx, builder, tables)
	if err != nil {
		return fmt.Errorf("failed to generate CREATE TABLE: %w", err)
	}

	return util.WriteOutput(cmd.OutOrStdout(), createOutput, strings.Join(statements, "\n\n")+"\n")
}
