package page

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ddlforge/ddlforge/cmd/util"
	"github.com/ddlforge/ddlforge/internal/ddl"
	"github.com/ddlforge/ddlforge/ir"
	"github.com/spf13/cobra"
)

var (
	pageSQL     string
	pageTable   string
	pageColumns []string
	pageWhere   string
	pageOrderBy string
	pageOffset  int
	pageNo      int
	pageSize    int
)

var PageCmd = newPageCmd()

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Append a LIMIT clause to a query",
		Long: `Append a MySQL LIMIT clause to a query given with --sql, or to a SELECT built
from --table, --columns, --where and --order-by. The offset is taken from --offset
when set, otherwise it is derived from --page and --size.`,
		RunE:         runPage,
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&pageSQL, "sql", "", "Base query")
	cmd.Flags().StringVar(&pageTable, "table", "", "Table to select from (uses --database as qualifier)")
	cmd.Flags().StringSliceVar(&pageColumns, "columns", nil, "Columns to select (default *)")
	cmd.Flags().StringVar(&pageWhere, "where", "", "Raw WHERE condition")
	cmd.Flags().StringVar(&pageOrderBy, "order-by", "", "Raw ORDER BY expression")
	cmd.Flags().IntVar(&pageOffset, "offset", 0, "Row offset; overrides --page")
	cmd.Flags().IntVar(&pageNo, "page", 1, "1-based page number")
	cmd.Flags().IntVar(&pageSize, "size", util.GetEnvIntWithDefault("DDLFORGE_PAGE_SIZE", 20), "Page size (env: DDLFORGE_PAGE_SIZE)")
	cmd.MarkFlagsMutuallyExclusive("sql", "table")

	return cmd
}

func runPage(cmd *cobra.Command, args []string) error {
	if pageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	base, err := baseQuery()
	if err != nil {
		return err
	}

	offset := ddl.Offset(pageNo, pageSize)
	if cmd.Flags().Changed("offset") {
		if pageOffset < 0 {
			return fmt.Errorf("offset must not be negative, got %d", pageOffset)
		}
		offset = pageOffset
	}

	builder, err := util.NewBuilderFromConfig()
	if err != nil {
		return err
	}
	return util.WriteOutput(cmd.OutOrStdout(), "stdout", builder.PageLimit(base, offset, pageNo, pageSize)+"\n")
}

// baseQuery returns --sql as given or a SELECT built from the table flags
func baseQuery() (string, error) {
	switch {
	case strings.TrimSpace(pageSQL) != "":
		return strings.TrimRight(strings.TrimSpace(pageSQL), ";"), nil
	case strings.TrimSpace(pageTable) != "":
		return selectQuery(util.DefaultDatabase(), pageTable, pageColumns, pageWhere, pageOrderBy)
	default:
		return "", fmt.Errorf("either --sql or --table is required")
	}
}

func selectQuery(database, table string, columns []string, where, orderBy string) (string, error) {
	selected := []string{"*"}
	if len(columns) > 0 {
		selected = make([]string, 0, len(columns))
		for _, c := range columns {
			selected = append(selected, ir.QuoteIdentifier(strings.TrimSpace(c)))
		}
	}

	stmt := sq.Select(selected...).From(ir.QualifyName(database, table))
	if strings.TrimSpace(where) != "" {
		stmt = stmt.Where(where)
	}
	if strings.TrimSpace(orderBy) != "" {
		stmt = stmt.OrderBy(orderBy)
	}

	query, queryArgs, err := stmt.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query for %s: %w", table, err)
	}
	if len(queryArgs) > 0 {
		return "", fmt.Errorf("unexpected bind arguments in query for %s", table)
	}
	return query, nil
}
