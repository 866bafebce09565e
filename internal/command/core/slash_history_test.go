package core

import (
	"testing"

	"omnia/internal/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreCommandsRegistered(t *testing.T) {
	for _, name := range []string{"about", "history"} {
		cmd, ok := command.GetCommand(name)
		require.True(t, ok, "command %s not registered", name)

		provider, ok := cmd.(command.SlashProvider)
		require.True(t, ok)
		assert.Equal(t, name, provider.SlashDefinition().Name)
	}
}
