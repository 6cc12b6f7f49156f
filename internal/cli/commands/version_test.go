package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaporm/internal/cli/commands"
)

func TestVersionCommand(t *testing.T) {
	cmd := commands.NewVersionCommand("1.2.3")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "leaporm v1.2.3")
	assert.Contains(t, out.String(), "Entity CRUD toolkit")
}
