package music

import (
	"errors"
	"fmt"
	"strings"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/music/parsers"
	"omnia/internal/music/player"
	"omnia/internal/music/queue"

	"github.com/bwmarrin/discordgo"
)

const queueListLimit = 10

type MusicCommand struct {
	Bot bot.BotVoice
}

func (c *MusicCommand) Name() string        { return "music" }
func (c *MusicCommand) Description() string { return "Play music in your voice channel" }
func (c *MusicCommand) Group() string       { return "music" }
func (c *MusicCommand) Category() string    { return "🎵 Music" }

func (c *MusicCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "play",
				Description: "Play a track by URL or title",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "query",
						Description: "YouTube URL or search text",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "skip",
				Description: "Skip the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "stop",
				Description: "Stop playback and clear the queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "pause",
				Description: "Pause the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "resume",
				Description: "Resume a paused track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "queue",
				Description: "Show the pending queue",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "nowplaying",
				Description: "Show the current track",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "loop",
				Description: "Set the loop mode",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "mode",
						Description: "What repeats when a track ends",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "off", Value: "off"},
							{Name: "single", Value: "single"},
							{Name: "queue", Value: "queue"},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "autoplay",
				Description: "Keep playing related tracks when the queue runs out",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "enabled",
						Description: "Turn autoplay on or off",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "shuffle",
				Description: "Reorder the pending queue",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "mode",
						Description: "Shuffle style",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "restore order", Value: queue.ShuffleOff},
							{Name: "random", Value: queue.ShuffleStandard},
							{Name: "riffle", Value: queue.ShuffleRiffle},
						},
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "remove",
				Description: "Remove a track from the queue",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "position",
						Description: "Queue position to remove",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "move",
				Description: "Move a track inside the queue",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "from",
						Description: "Current position",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "to",
						Description: "New position",
						Required:    true,
					},
				},
			},
		},
	}
}

func (c *MusicCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := context.Session
	event := context.Event
	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	p := c.Bot.GetOrCreatePlayer(event.GuildID)

	switch sub.Name {
	case "play":
		return c.play(session, event, p, sub)
	case "skip":
		return respondResult(session, event, "⏭️ Skipped", p.Skip())
	case "stop":
		return respondResult(session, event, "⏹️ Stopped and cleared the queue", p.Stop())
	case "pause":
		return respondResult(session, event, "⏸️ Paused", p.Pause())
	case "resume":
		return respondResult(session, event, "▶️ Resumed", p.Resume())
	case "queue":
		return c.showQueue(session, event, p)
	case "nowplaying":
		return c.nowPlaying(session, event, p)
	case "loop":
		return c.setLoop(session, event, p, sub)
	case "autoplay":
		return c.setAutoplay(session, event, p, sub)
	case "shuffle":
		return c.shuffle(session, event, p, sub)
	case "remove":
		return c.remove(session, event, p, sub)
	case "move":
		return c.move(session, event, p, sub)
	}
	return nil
}

func (c *MusicCommand) play(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	query := optString(sub, "query")
	if strings.TrimSpace(query) == "" {
		return bot.RespondEphemeral(session, event, "Give me a URL or something to search for.")
	}

	channelID, err := c.Bot.FindUserVoiceState(event.GuildID, callerID(event))
	if err != nil {
		return bot.RespondEphemeral(session, event, "Join a voice channel first.")
	}

	// resolving can take a while, acknowledge now
	if err := bot.Defer(session, event); err != nil {
		return err
	}

	added, err := p.Enqueue(query, "", "", callerID(event), callerName(event))
	if err != nil {
		return bot.FollowupEmbed(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("❌ Could not resolve `%s`: %v", query, err),
		})
	}

	if err := p.Play(channelID); err != nil && !errors.Is(err, player.ErrNoTracksInQueue) {
		return bot.FollowupEmbed(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("❌ Could not start playback: %v", err),
		})
	}

	first := added[0]
	desc := fmt.Sprintf("🎶 Added [%s](%s)", trackLabel(&first), first.URL)
	if len(added) > 1 {
		desc = fmt.Sprintf("🎶 Added **%d** tracks starting with [%s](%s)", len(added), trackLabel(&first), first.URL)
	}
	return bot.FollowupEmbed(session, event, &discordgo.MessageEmbed{Description: desc})
}

func (c *MusicCommand) showQueue(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player) error {
	desc, ok := c.queueDescription(p)
	if !ok {
		return bot.RespondEphemeral(session, event, "The queue is empty.")
	}

	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Title:       "🎵 Queue",
		Description: desc,
	})
}

func (c *MusicCommand) nowPlaying(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player) error {
	track := p.CurrentTrack()
	if track == nil {
		return bot.RespondEphemeral(session, event, "Nothing is playing.")
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Now Playing",
		Description: fmt.Sprintf("[%s](%s)", trackLabel(track), track.URL),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Duration", Value: track.DurationString(), Inline: true},
			{Name: "Loop", Value: p.LoopMode().String(), Inline: true},
			{Name: "Autoplay", Value: onOff(p.Autoplay()), Inline: true},
		},
	}
	if track.Uploader != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Uploader", Value: track.Uploader, Inline: true})
	}
	if track.RequesterName != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Requested by", Value: track.RequesterName, Inline: true})
	}
	if track.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.Thumbnail}
	}
	buttons := bot.NowPlayingButtons(p.Status() == player.StatusPaused, p.LoopMode(), p.Autoplay())
	return bot.RespondEmbedComponents(session, event, embed, buttons)
}

func (c *MusicCommand) setLoop(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	mode, err := player.ParseLoopMode(optString(sub, "mode"))
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	p.SetLoopMode(mode)
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: "🔁 Loop mode set to **" + mode.String() + "**",
	})
}

func (c *MusicCommand) setAutoplay(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	enabled := optBool(sub, "enabled")
	p.SetAutoplay(enabled)
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: "📻 Autoplay is now **" + onOff(enabled) + "**",
	})
}

func (c *MusicCommand) shuffle(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	mode := int(optInt(sub, "mode"))
	if err := p.Shuffle(mode); err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	label := "restored to submission order"
	switch mode {
	case queue.ShuffleStandard:
		label = "shuffled randomly"
	case queue.ShuffleRiffle:
		label = "riffle shuffled"
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: "🔀 Queue " + label,
	})
}

func (c *MusicCommand) remove(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	pos := int(optInt(sub, "position"))
	track, err := p.Remove(pos)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🗑️ Removed **%s** from the queue", trackLabel(&track)),
	})
}

func (c *MusicCommand) move(session *discordgo.Session, event *discordgo.InteractionCreate, p *player.Player, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	from := int(optInt(sub, "from"))
	to := int(optInt(sub, "to"))
	track, err := p.Move(from, to)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("↕️ Moved **%s** to position %d", trackLabel(&track), to),
	})
}

func respondResult(session *discordgo.Session, event *discordgo.InteractionCreate, okMessage string, err error) error {
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{Description: okMessage})
}

func trackLabel(t *parsers.Track) string {
	if t.Title != "" {
		return t.Title
	}
	return t.URL
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func optString(sub *discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func optInt(sub *discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.IntValue()
		}
	}
	return 0
}

func optBool(sub *discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	for _, opt := range sub.Options {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}
	return false
}

func callerID(event *discordgo.InteractionCreate) string {
	if event.Member != nil && event.Member.User != nil {
		return event.Member.User.ID
	}
	if event.User != nil {
		return event.User.ID
	}
	return ""
}

func callerName(event *discordgo.InteractionCreate) string {
	if event.Member != nil && event.Member.User != nil {
		return event.Member.User.Username
	}
	if event.User != nil {
		return event.User.Username
	}
	return ""
}
