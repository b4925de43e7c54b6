package ddl

import (
	"context"
	"fmt"

	"github.com/ddlforge/ddlforge/ir"
	"golang.org/x/sync/errgroup"
)

// RenderCreateTables renders CREATE TABLE for every table concurrently.
// Results keep the order of tables. The first failure cancels the rest and is
// returned with the offending table's name.
func RenderCreateTables(ctx context.Context, builder Builder, tables []*ir.Table) ([]string, error) {
	results := make([]string, len(tables))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, table := range tables {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sql, err := builder.CreateTable(table)
			if err != nil {
				name := ""
				if table != nil {
					name = table.Name
				}
				return fmt.Errorf("failed to render table %q: %w", name, err)
			}
			results[i] = sql
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
