// Package main provides the leaporm CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leaporm/internal/cli"

	// Register database adapters
	_ "github.com/leapstack-labs/leaporm/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leaporm/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leaporm/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
