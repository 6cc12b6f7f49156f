package commands

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaporm/pkg/adapter"
)

// inspectConcurrency bounds parallel metadata queries against the target.
const inspectConcurrency = 4

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TABLE...",
		Short: "Show column metadata for tables in the target database",
		Long: `Inspect one or more tables in the configured target database.

Tables may be qualified (schema.table); unqualified names use the
dialect's default schema. Metadata for multiple tables is fetched
concurrently.`,
		Example: `  leaporm inspect users
  leaporm inspect public.users public.orders`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openTarget(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			metas, err := fetchMetadata(cmd, a, args)
			if err != nil {
				return err
			}

			for _, meta := range metas {
				renderMetadata(cmd, meta)
			}
			return nil
		},
	}
}

// fetchMetadata retrieves table metadata concurrently, preserving the
// order the tables were named on the command line.
func fetchMetadata(cmd *cobra.Command, a adapter.Adapter, tables []string) ([]*adapter.Metadata, error) {
	metas := make([]*adapter.Metadata, len(tables))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(inspectConcurrency)

	for i, name := range tables {
		eg.Go(func() error {
			meta, err := a.GetTableMetadata(ctx, name)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", name, err)
			}
			mu.Lock()
			metas[i] = meta
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return metas, nil
}

func renderMetadata(cmd *cobra.Command, meta *adapter.Metadata) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Table: %s.%s (%d rows)\n", meta.Schema, meta.Name, meta.RowCount)

	cols := make([]adapter.Column, len(meta.Columns))
	copy(cols, meta.Columns)
	sort.Slice(cols, func(i, j int) bool { return cols[i].Position < cols[j].Position })

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Column", "Type", "Nullable"})
	for _, col := range cols {
		t.AppendRow(table.Row{col.Position, col.Name, col.Type, col.Nullable})
	}
	t.Render()
	_, _ = fmt.Fprintln(w)
}
