package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ddlforge/ddlforge/cmd/alter"
	"github.com/ddlforge/ddlforge/cmd/create"
	"github.com/ddlforge/ddlforge/cmd/database"
	"github.com/ddlforge/ddlforge/cmd/page"
	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/logger"
	"github.com/ddlforge/ddlforge/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Debug   bool
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "ddlforge",
	Short: "MySQL DDL generator for table and database snapshots",
	Long: fmt.Sprintf(`ddlforge turns table and database snapshots into MySQL DDL.

Version: %s

Commands:
  create    Generate CREATE TABLE statements
  alter     Generate ALTER TABLE statements between two snapshots
  database  Generate a CREATE DATABASE statement
  page      Append a LIMIT clause to a query

Use "ddlforge [command] --help" for more information about a command.`, version.String()),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return initConfig()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .ddlforge.yaml in $HOME or the working directory)")
	RootCmd.PersistentFlags().String("reorder-mode", "simulated", "Column reorder detection: simulated or legacy (env: DDLFORGE_REORDER_MODE)")
	RootCmd.PersistentFlags().String("database", "", "Default database qualifier for snapshots without one (env: DDLFORGE_DATABASE)")

	RootCmd.PersistentFlags().String("ignore-file", "", "Ignore file with table/column/index patterns (default .ddlforgeignore)")

	viper.BindPFlag(util.KeyIgnoreFile, RootCmd.PersistentFlags().Lookup("ignore-file"))
	viper.BindPFlag(util.KeyReorderMode, RootCmd.PersistentFlags().Lookup("reorder-mode"))
	viper.BindPFlag(util.KeyDatabase, RootCmd.PersistentFlags().Lookup("database"))

	RootCmd.AddCommand(create.CreateCmd)
	RootCmd.AddCommand(alter.AlterCmd)
	RootCmd.AddCommand(database.DatabaseCmd)
	RootCmd.AddCommand(page.PageCmd)
	RootCmd.AddCommand(VersionCmd)
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ddlforge")
	}

	viper.SetEnvPrefix("DDLFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	logger.Get().Debug("Using config file", "path", viper.ConfigFileUsed())
	return nil
}

func setupLogger() {
	logger.SetGlobal(logger.New(Debug), Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
