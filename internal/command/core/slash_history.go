package core

import (
	"fmt"
	"strings"

	"omnia/internal/bot"
	"omnia/internal/command"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type HistoryCommand struct{}

func (c *HistoryCommand) Name() string        { return "history" }
func (c *HistoryCommand) Description() string { return "Show recently used commands in this server" }
func (c *HistoryCommand) Group() string       { return "core" }
func (c *HistoryCommand) Category() string    { return "🕯️ Information" }

func (c *HistoryCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *HistoryCommand) Run(ctx interface{}) error {
	slashCtx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slashCtx.Session
	event := slashCtx.Event

	if event.GuildID == "" || slashCtx.Storage == nil {
		return bot.RespondEphemeral(session, event, "Command history is only available in a server.")
	}

	history, err := slashCtx.Storage.FetchCommandHistory(event.GuildID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return bot.RespondEphemeral(session, event, "No commands have been used here yet.")
	}

	var sb strings.Builder
	for i := len(history) - 1; i >= 0; i-- {
		rec := history[i]
		fmt.Fprintf(&sb, "`%s` **/%s** — %s\n", rec.Datetime.Format("2006-01-02 15:04"), rec.Command, rec.Username)
	}

	embedMsg := embed.NewEmbed().
		SetColor(bot.EmbedColor).
		SetTitle("📜 Command History").
		SetDescription(sb.String())

	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embedMsg.MessageEmbed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func init() {
	command.RegisterCommand(&HistoryCommand{})
}
