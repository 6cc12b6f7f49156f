package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configTemplate = `# leaporm configuration
environment: dev

# Directory holding goose SQL migration scripts
migrations_dir: migrations

# Target database. Supported types: sqlite, postgres, duckdb
target:
  type: sqlite
  path: leaporm.db

environments:
  prod:
    target:
      type: postgres
      host: ${PGHOST}
      port: 5432
      database: app
      user: ${PGUSER}
      password: ${PGPASSWORD}
      pool:
        max_open_conns: 20
        max_idle_conns: 5
        conn_max_lifetime: 30m
`

const migrationTemplate = `-- +goose Up
-- Replace this with your first schema migration.
-- CREATE TABLE users (
--     id BIGINT NOT NULL,
--     name VARCHAR(255) NOT NULL,
--     PRIMARY KEY (id)
-- );

-- +goose Down
-- DROP TABLE users;
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leaporm project",
		Long: `Initialize a new leaporm project with default configuration.

This creates:
  - leaporm.yaml configuration file
  - migrations/ directory with a starter goose script`,
		Example: `  # Initialize in current directory
  leaporm init

  # Initialize in a new directory
  leaporm init my-project

  # Force overwrite existing config
  leaporm init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "leaporm.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("leaporm.yaml already exists. Use --force to overwrite")
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	migrationsDir := filepath.Join(dir, "migrations")
	if err := os.MkdirAll(migrationsDir, 0750); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}
	migrationPath := filepath.Join(migrationsDir, "00001_init.sql")
	if _, err := os.Stat(migrationPath); os.IsNotExist(err) || force {
		if err := os.WriteFile(migrationPath, []byte(migrationTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", migrationPath, err)
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Created %s\n", configPath)
	_, _ = fmt.Fprintf(out, "Created %s\n", migrationPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintln(out, "  1. Edit leaporm.yaml to point at your database")
	_, _ = fmt.Fprintln(out, "  2. Write your first migration in migrations/")
	_, _ = fmt.Fprintln(out, "  3. Run 'leaporm migrate up'")
	return nil
}
