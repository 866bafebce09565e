package command

import (
	"log"
	"time"

	"omnia/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

// SlashDefinition forwards to the wrapped command so middleware does not
// hide a command from registration.
func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if p, ok := w.Command.(SlashProvider); ok {
		return p.SlashDefinition()
	}
	return nil
}

// Component forwards button interactions to the wrapped command.
func (w *wrappedCommand) Component(ctx *ComponentInteractionContext) error {
	if h, ok := w.Command.(ComponentInteractionHandler); ok {
		return h.Component(ctx)
	}
	return nil
}

// WithGuildOnly rejects the command outside of guilds.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Event.GuildID == "" {
					_ = v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
						Type: discordgo.InteractionResponseChannelMessageWithSource,
						Data: &discordgo.InteractionResponseData{
							Content: "You must be in a guild to use this command.",
							Flags:   discordgo.MessageFlagsEphemeral,
						},
					})
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger records command invocations in the guild history.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashInteractionContext); ok && v.Storage != nil && v.Event.GuildID != "" {
					user := v.Event.User
					if v.Event.Member != nil {
						user = v.Event.Member.User
					}
					rec := storage.CommandHistoryRecord{
						ChannelID: v.Event.ChannelID,
						Command:   cmd.Name(),
						Datetime:  time.Now().UTC(),
					}
					if user != nil {
						rec.UserID = user.ID
						rec.Username = user.Username
					}
					if err := v.Storage.AppendCommandToHistory(v.Event.GuildID, rec); err != nil {
						log.Println("[WARN] Failed to log command:", err)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
