package alter

import (
	"fmt"

	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/logger"
	"github.com/ddlforge/ddlforge/internal/plan"
	"github.com/ddlforge/ddlforge/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	alterOld     string
	alterNew     string
	outputHuman  string
	outputJSON   string
	outputSQL    string
	alterNoColor bool
)

var AlterCmd = &cobra.Command{
	Use:   "alter",
	Short: "Generate ALTER TABLE statements between two table snapshots",
	Long: `Compare an old table snapshot (--old) with a new one (--new) and generate the
ALTER TABLE statements that migrate the first to the second. Column and index
edits are taken from each entry's edit_status; column moves are detected from
the order of the new snapshot.`,
	RunE:         runAlter,
	SilenceUsage: true,
}

func init() {
	AlterCmd.Flags().StringVar(&alterOld, "old", "", "Path to the current table snapshot (required)")
	AlterCmd.Flags().StringVar(&alterNew, "new", "", "Path to the desired table snapshot (required)")

	AlterCmd.Flags().StringVar(&outputHuman, "output-human", "", "Output human-readable format to stdout or file path")
	AlterCmd.Flags().StringVar(&outputJSON, "output-json", "", "Output JSON format to stdout or file path")
	AlterCmd.Flags().StringVar(&outputSQL, "output-sql", "", "Output SQL format to stdout or file path")
	AlterCmd.Flags().BoolVar(&alterNoColor, "no-color", false, "Disable colored output")

	AlterCmd.MarkFlagRequired("old")
	AlterCmd.MarkFlagRequired("new")
}

func runAlter(cmd *cobra.Command, args []string) error {
	outputs, err := determineOutputs()
	if err != nil {
		return err
	}

	migrationPlan, err := GeneratePlan(alterOld, alterNew)
	if err != nil {
		return err
	}

	for _, output := range outputs {
		if err := processOutput(cmd, migrationPlan, output); err != nil {
			return err
		}
	}
	return nil
}

// GeneratePlan loads both snapshots and builds the migration plan between them
func GeneratePlan(oldPath, newPath string) (*plan.Plan, error) {
	builder, err := util.NewBuilderFromConfig()
	if err != nil {
		return nil, err
	}

	oldTable, err := snapshot.LoadTable(oldPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load old snapshot: %w", err)
	}
	newTable, err := snapshot.LoadTable(newPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load new snapshot: %w", err)
	}

	ignoreConfig, err := util.LoadIgnoreConfig()
	if err != nil {
		return nil, err
	}

	db := util.DefaultDatabase()
	oldTable = snapshot.ApplyDefaultDatabase(ignoreConfig.FilterTable(oldTable), db)
	newTable = snapshot.ApplyDefaultDatabase(ignoreConfig.FilterTable(newTable), db)

	migrationPlan, err := plan.New(builder, oldTable, newTable)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("Generated migration plan",
		"table", migrationPlan.Table,
		"changes", len(migrationPlan.Changes),
		"source", migrationPlan.SourceFingerprint.String())
	return migrationPlan, nil
}

// outputSpec represents a single output specification
type outputSpec struct {
	format string // "human", "json", or "sql"
	target string // "stdout" or file path
}

// determineOutputs parses the output flags and returns the list of outputs to generate
func determineOutputs() ([]outputSpec, error) {
	var outputs []outputSpec
	stdoutCount := 0

	for _, o := range []outputSpec{
		{format: "human", target: outputHuman},
		{format: "json", target: outputJSON},
		{format: "sql", target: outputSQL},
	} {
		if o.target == "" {
			continue
		}
		if o.target == "stdout" {
			stdoutCount++
		}
		outputs = append(outputs, o)
	}

	if stdoutCount > 1 {
		return nil, fmt.Errorf("only one output format can use stdout")
	}

	// SQL to stdout unless something else was asked for
	if len(outputs) == 0 {
		outputs = append(outputs, outputSpec{format: "sql", target: "stdout"})
	}

	return outputs, nil
}

// processOutput writes the plan in the specified format to the target destination
func processOutput(cmd *cobra.Command, migrationPlan *plan.Plan, output outputSpec) error {
	var content string

	switch output.format {
	case "human":
		useColor := output.target == "stdout" && !alterNoColor
		content = migrationPlan.HumanColored(useColor)
	case "json":
		data, err := migrationPlan.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to generate JSON output: %w", err)
		}
		content = data + "\n"
	case "sql":
		content = migrationPlan.ToSQL()
		if content == "" {
			content = "-- No changes\n"
		}
	default:
		return fmt.Errorf("unknown output format: %s", output.format)
	}

	if err := util.WriteOutput(cmd.OutOrStdout(), output.target, content); err != nil {
		return fmt.Errorf("failed to write %s output: %w", output.format, err)
	}
	return nil
}
