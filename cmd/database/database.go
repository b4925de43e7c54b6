package database

import (
	"fmt"

	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/snapshot"
	"github.com/ddlforge/ddlforge/ir"
	"github.com/spf13/cobra"
)

var (
	databaseName      string
	databaseCharset   string
	databaseCollation string
	databaseFile      string
)

var DatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Generate a CREATE DATABASE statement",
	Long: `Generate a CREATE DATABASE statement from flags or from a database snapshot (--file).
Flags given alongside --file override the values in the snapshot.`,
	RunE:         runDatabase,
	SilenceUsage: true,
}

func init() {
	DatabaseCmd.Flags().StringVar(&databaseName, "name", "", "Database name")
	DatabaseCmd.Flags().StringVar(&databaseCharset, "charset", "", "Default character set")
	DatabaseCmd.Flags().StringVar(&databaseCollation, "collation", "", "Default collation")
	DatabaseCmd.Flags().StringVar(&databaseFile, "file", "", "Path to a database snapshot (.json, .yaml, .yml)")
}

func runDatabase(cmd *cobra.Command, args []string) error {
	database := &ir.Database{}
	if databaseFile != "" {
		loaded, err := snapshot.LoadDatabase(databaseFile)
		if err != nil {
			return err
		}
		database = loaded
	}
	if databaseName != "" {
		database.Name = databaseName
	}
	if databaseCharset != "" {
		database.Charset = databaseCharset
	}
	if databaseCollation != "" {
		database.Collation = databaseCollation
	}

	builder, err := util.NewBuilderFromConfig()
	if err != nil {
		return err
	}
	stmt, err := builder.CreateDatabase(database)
	if err != nil {
		return fmt.Errorf("failed to generate CREATE DATABASE: %w", err)
	}
	return util.WriteOutput(cmd.OutOrStdout(), "stdout", stmt+"\n")
}
