package core

import (
	"fmt"
	"strings"
	"time"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/version"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of this bot" }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slashCtx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slashCtx.Session
	event := slashCtx.Event

	buildDate := "unknown"
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			buildDate = t.Format("2006-01-02")
		}
	}
	goVer := strings.TrimPrefix(version.GoVersion, "go")

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetDescription(fmt.Sprintf("ℹ️ **About %s**\n\n%s", version.AppName, version.AppDescription)).
		AddField("Release", fmt.Sprintf("%s (Go %s)", buildDate, goVer)).
		AddField("Commands", "`/music` `/lyrics` `/playlist` `/history`")

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embedMsg.MessageEmbed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func init() {
	command.RegisterCommand(&AboutCommand{})
}
