package music

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/lyrics"

	"github.com/bwmarrin/discordgo"
)

const lyricsChunkLimit = 4096

type LyricsCommand struct {
	Bot     bot.BotVoice
	Service *lyrics.Service
}

func (c *LyricsCommand) Name() string        { return "lyrics" }
func (c *LyricsCommand) Description() string { return "Show lyrics for the current or a named track" }
func (c *LyricsCommand) Group() string       { return "music" }
func (c *LyricsCommand) Category() string    { return "🎵 Music" }

func (c *LyricsCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Artist and title, defaults to the playing track",
				Required:    false,
			},
		},
	}
}

func (c *LyricsCommand) Run(ctx interface{}) error {
	slashCtx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slashCtx.Session
	event := slashCtx.Event

	q, label, err := c.buildQuery(event)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}

	if err := bot.Defer(session, event); err != nil {
		return err
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	result, err := c.Service.Search(lookupCtx, q)
	if err != nil {
		if errors.Is(err, lyrics.ErrNotFound) {
			return bot.FollowupEmbed(session, event, &discordgo.MessageEmbed{
				Description: fmt.Sprintf("😶 No lyrics found for **%s**", label),
			})
		}
		return bot.FollowupEmbed(session, event, &discordgo.MessageEmbed{
			Description: fmt.Sprintf("❌ Lyrics lookup failed: %v", err),
		})
	}

	chunks := lyrics.SplitLyrics(result.Text, lyricsChunkLimit)
	for i, chunk := range chunks {
		embed := &discordgo.MessageEmbed{Description: chunk}
		if i == 0 {
			embed.Title = "📜 " + label
			embed.Footer = &discordgo.MessageEmbedFooter{Text: "via " + result.Provider}
		}
		if err := bot.FollowupEmbed(session, event, embed); err != nil {
			return err
		}
	}
	return nil
}

// buildQuery prefers an explicit query; otherwise the playing track's
// metadata is used, including its duration to pin the right recording.
func (c *LyricsCommand) buildQuery(event *discordgo.InteractionCreate) (lyrics.Query, string, error) {
	data := event.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Name == "query" && strings.TrimSpace(opt.StringValue()) != "" {
			raw := strings.TrimSpace(opt.StringValue())
			artist, title := lyrics.ExtractMetadata(raw, "")
			return lyrics.Query{Artist: artist, Title: title}, raw, nil
		}
	}

	p := c.Bot.GetOrCreatePlayer(event.GuildID)
	track := p.CurrentTrack()
	if track == nil {
		return lyrics.Query{}, "", errors.New("nothing is playing, give me a track name")
	}

	artist, title := lyrics.ExtractMetadata(track.Title, track.Uploader)
	label := strings.TrimSpace(artist + " - " + title)
	return lyrics.Query{Artist: artist, Title: title, Duration: track.Duration}, label, nil
}
