package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaporm/internal/cli/config"
	"github.com/leapstack-labs/leaporm/pkg/adapter"
)

// openTarget connects to the configured target database.
// The caller owns the returned adapter and must Close it.
func openTarget(cmd *cobra.Command) (adapter.Adapter, error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	if cfg.Target == nil {
		return nil, fmt.Errorf("no target configured; run 'leaporm init' or set target in leaporm.yaml")
	}

	acfg := cfg.Target.AdapterConfig()
	a, err := adapter.NewAdapter(acfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, acfg); err != nil {
		return nil, fmt.Errorf("failed to connect to %s target: %w", acfg.Type, err)
	}
	return a, nil
}
