package music

import (
	"errors"
	"fmt"
	"strings"

	"omnia/internal/bot"
	"omnia/internal/command"
	"omnia/internal/music/parsers"
	"omnia/internal/music/player"
	"omnia/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type PlaylistCommand struct {
	Bot bot.BotVoice
}

func (c *PlaylistCommand) Name() string        { return "playlist" }
func (c *PlaylistCommand) Description() string { return "Save and load queue snapshots" }
func (c *PlaylistCommand) Group() string       { return "music" }
func (c *PlaylistCommand) Category() string    { return "🎵 Music" }

func (c *PlaylistCommand) SlashDefinition() *discordgo.ApplicationCommand {
	nameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Playlist name",
		Required:    true,
	}
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "save",
				Description: "Save the current track and queue as a playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "load",
				Description: "Queue up a saved playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOption},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "Show the guild's saved playlists",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete a saved playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOption},
			},
		},
	}
}

func (c *PlaylistCommand) Run(ctx interface{}) error {
	slashCtx, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	session := slashCtx.Session
	event := slashCtx.Event
	store := slashCtx.Storage
	data := event.ApplicationCommandData()
	if len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	switch sub.Name {
	case "save":
		return c.save(session, event, store, optString(sub, "name"))
	case "load":
		return c.load(session, event, store, optString(sub, "name"))
	case "list":
		return c.list(session, event, store)
	case "delete":
		return c.delete(session, event, store, optString(sub, "name"))
	}
	return nil
}

func (c *PlaylistCommand) save(session *discordgo.Session, event *discordgo.InteractionCreate, store *storage.Storage, name string) error {
	p := c.Bot.GetOrCreatePlayer(event.GuildID)

	var tracks []storage.PlaylistTrack
	if current := p.CurrentTrack(); current != nil {
		tracks = append(tracks, storage.PlaylistTrack{URL: current.URL, Title: current.Title, Uploader: current.Uploader})
	}
	for _, t := range p.Queue(0) {
		tracks = append(tracks, storage.PlaylistTrack{URL: t.URL, Title: t.Title, Uploader: t.Uploader})
	}
	if len(tracks) == 0 {
		return bot.RespondEphemeral(session, event, "Nothing to save, the queue is empty.")
	}

	playlist, err := store.SavePlaylist(event.GuildID, name, callerID(event), tracks)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("💾 Saved **%s** with %d tracks", playlist.Name, len(playlist.Tracks)),
	})
}

func (c *PlaylistCommand) load(session *discordgo.Session, event *discordgo.InteractionCreate, store *storage.Storage, name string) error {
	playlist, err := store.GetPlaylist(event.GuildID, name)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}

	p := c.Bot.GetOrCreatePlayer(event.GuildID)
	for _, t := range playlist.Tracks {
		p.EnqueueTrack(parsers.Track{
			URL:           t.URL,
			Title:         t.Title,
			Uploader:      t.Uploader,
			RequesterID:   callerID(event),
			RequesterName: callerName(event),
		})
	}

	// start playing right away when the caller sits in a voice channel
	if channelID, err := c.Bot.FindUserVoiceState(event.GuildID, callerID(event)); err == nil {
		if err := p.Play(channelID); err != nil && !errors.Is(err, player.ErrNoTracksInQueue) {
			return bot.RespondEphemeral(session, event, err.Error())
		}
	}

	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📂 Queued **%d** tracks from **%s**", len(playlist.Tracks), playlist.Name),
	})
}

func (c *PlaylistCommand) list(session *discordgo.Session, event *discordgo.InteractionCreate, store *storage.Storage) error {
	playlists, err := store.ListPlaylists(event.GuildID)
	if err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	if len(playlists) == 0 {
		return bot.RespondEphemeral(session, event, "No playlists saved yet.")
	}

	var sb strings.Builder
	for _, pl := range playlists {
		fmt.Fprintf(&sb, "**%s** — %d tracks, saved %s\n", pl.Name, len(pl.Tracks), pl.CreatedAt.Format("2006-01-02"))
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Title:       "📋 Playlists",
		Description: sb.String(),
	})
}

func (c *PlaylistCommand) delete(session *discordgo.Session, event *discordgo.InteractionCreate, store *storage.Storage, name string) error {
	if err := store.DeletePlaylist(event.GuildID, name); err != nil {
		return bot.RespondEphemeral(session, event, err.Error())
	}
	return bot.RespondEmbed(session, event, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("🗑️ Deleted playlist **%s**", name),
	})
}
