package music

import (
	"fmt"
	"strings"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/music/player"

	"github.com/bwmarrin/discordgo"
)

// Component handles the button rows attached to Now Playing messages.
// Custom IDs look like "music:<action>".
func (c *MusicCommand) Component(ctx *command.ComponentInteractionContext) error {
	session := ctx.Session
	event := ctx.Event
	if event.GuildID == "" {
		return nil
	}

	p := c.Bot.GetOrCreatePlayer(event.GuildID)
	action := strings.TrimPrefix(event.MessageComponentData().CustomID, "music:")

	switch action {
	case "pause":
		var err error
		if p.Status() == player.StatusPaused {
			err = p.Resume()
		} else {
			err = p.Pause()
		}
		if err != nil {
			return bot.RespondEphemeral(session, event, err.Error())
		}
		return c.refreshControls(session, event, p)
	case "skip":
		if err := p.Skip(); err != nil {
			return bot.RespondEphemeral(session, event, err.Error())
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{Description: "⏭️ Skipped"})
	case "stop":
		if err := p.Stop(); err != nil {
			return bot.RespondEphemeral(session, event, err.Error())
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{Description: "⏹️ Stopped and cleared the queue"})
	case "loop":
		p.SetLoopMode(nextLoopMode(p.LoopMode()))
		return c.refreshControls(session, event, p)
	case "autoplay":
		p.SetAutoplay(!p.Autoplay())
		return c.refreshControls(session, event, p)
	case "queue":
		desc, ok := c.queueDescription(p)
		if !ok {
			return bot.RespondEphemeral(session, event, "The queue is empty.")
		}
		return bot.RespondEmbedEphemeral(session, event, &discordgo.MessageEmbed{
			Title:       "🎵 Queue",
			Description: desc,
		})
	}
	return nil
}

// refreshControls redraws the pressed message's button rows so labels
// reflect the new player state.
func (c *MusicCommand) refreshControls(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player) error {
	var embeds []*discordgo.MessageEmbed
	if event.Message != nil {
		embeds = event.Message.Embeds
	}
	return session.InteractionRespond(event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: bot.NowPlayingButtons(p.Status() == player.StatusPaused, p.LoopMode(), p.Autoplay()),
		},
	})
}

// nextLoopMode cycles off -> single -> queue -> off.
func nextLoopMode(mode player.LoopMode) player.LoopMode {
	switch mode {
	case player.LoopOff:
		return player.LoopSingle
	case player.LoopSingle:
		return player.LoopQueue
	default:
		return player.LoopOff
	}
}

// queueDescription renders the current track and pending list; ok is
// false when there is nothing to show.
func (c *MusicCommand) queueDescription(p *player.Player) (string, bool) {
	current := p.CurrentTrack()
	pending := p.Queue(queueListLimit)
	if current == nil && len(pending) == 0 {
		return "", false
	}

	var sb strings.Builder
	if current != nil {
		fmt.Fprintf(&sb, "**Now playing:** [%s](%s) `%s`\n\n", trackLabel(current), current.URL, current.DurationString())
	}
	for i, t := range pending {
		fmt.Fprintf(&sb, "`%2d.` [%s](%s) `%s`\n", i+1, trackLabel(&t), t.URL, t.DurationString())
	}
	if rest := p.QueueLen() - len(pending); rest > 0 {
		fmt.Fprintf(&sb, "\n…and %d more", rest)
	}
	return sb.String(), true
}
