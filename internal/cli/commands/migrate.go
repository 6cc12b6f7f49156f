package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaporm/internal/cli/config"
	"github.com/leapstack-labs/leaporm/pkg/migrate"
)

// NewMigrateCommand creates the migrate command and its subcommands.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations against the target database",
		Long: `Apply, roll back, or report goose SQL migrations from the
configured migrations directory.`,
	}

	cmd.AddCommand(
		newMigrateAction("up", "Apply all pending migrations", func(m *migrate.Migrator, cmd *cobra.Command) error {
			if err := m.Up(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		}),
		newMigrateAction("down", "Roll back the most recent migration", func(m *migrate.Migrator, cmd *cobra.Command) error {
			if err := m.Down(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration")
			return nil
		}),
		newMigrateAction("status", "Show the status of each migration", func(m *migrate.Migrator, cmd *cobra.Command) error {
			return m.Status(cmd.Context())
		}),
		newMigrateAction("version", "Show the current migration version", func(m *migrate.Migrator, cmd *cobra.Command) error {
			v, err := m.Version(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Migration version: %d\n", v)
			return nil
		}),
	)

	return cmd
}

func newMigrateAction(use, short string, run func(*migrate.Migrator, *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			dir := cfg.MigrationsDir
			if dir == "" {
				dir = config.DefaultMigrationsDir
			}
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("migrations directory %s not found: %w", dir, err)
			}

			a, err := openTarget(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			m, err := migrate.New(a.Conn(), a.Dialect().GetName(), os.DirFS(dir), ".", logger)
			if err != nil {
				return err
			}
			return run(m, cmd)
		},
	}
}
