package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	ran  bool
}

func (c *stubCommand) Name() string        { return c.name }
func (c *stubCommand) Description() string { return "stub" }
func (c *stubCommand) Group() string       { return "test" }
func (c *stubCommand) Category() string    { return "test" }
func (c *stubCommand) Run(ctx interface{}) error {
	c.ran = true
	return nil
}

func (c *stubCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.name, Description: "stub"}
}

func tagging(tag string, order *[]string) Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				*order = append(*order, tag)
				return cmd.Run(ctx)
			},
		}
	}
}

func TestRegisterAndGetCommand(t *testing.T) {
	stub := &stubCommand{name: "stub-basic"}
	RegisterCommand(stub)

	got, ok := GetCommand("stub-basic")
	require.True(t, ok)
	assert.Equal(t, "stub-basic", got.Name())
}

func TestMiddlewareOrderOutermostFirst(t *testing.T) {
	var order []string
	stub := &stubCommand{name: "stub-order"}
	RegisterCommand(stub, tagging("outer", &order), tagging("inner", &order))

	cmd, ok := GetCommand("stub-order")
	require.True(t, ok)
	require.NoError(t, cmd.Run(nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.True(t, stub.ran)
}

type stubComponentCommand struct {
	stubCommand
	componentRan bool
}

func (c *stubComponentCommand) Component(ctx *ComponentInteractionContext) error {
	c.componentRan = true
	return nil
}

func TestWrappedCommandForwardsComponent(t *testing.T) {
	var order []string
	stub := &stubComponentCommand{stubCommand: stubCommand{name: "stub-component"}}
	RegisterCommand(stub, tagging("outer", &order))

	cmd, ok := GetCommand("stub-component")
	require.True(t, ok)

	handler, ok := cmd.(ComponentInteractionHandler)
	require.True(t, ok)
	require.NoError(t, handler.Component(&ComponentInteractionContext{}))
	assert.True(t, stub.componentRan)
}

func TestWrappedCommandKeepsSlashDefinition(t *testing.T) {
	var order []string
	stub := &stubCommand{name: "stub-slash"}
	RegisterCommand(stub, tagging("outer", &order))

	cmd, ok := GetCommand("stub-slash")
	require.True(t, ok)

	provider, ok := cmd.(SlashProvider)
	require.True(t, ok)
	def := provider.SlashDefinition()
	require.NotNil(t, def)
	assert.Equal(t, "stub-slash", def.Name)
}
