package discord

import (
	"fmt"
	"log"

	"omnia/internal/bot"
	"omnia/internal/music/parsers"
	"omnia/internal/music/player"

	"github.com/bwmarrin/discordgo"
)

// The bot reports playback events to the text channel the guild last
// used a music command in.

func (b *Bot) NowPlaying(guildID string, track parsers.Track) {
	embed := &discordgo.MessageEmbed{
		Title:       "🎶 Now Playing",
		Description: trackLink(track),
	}
	if track.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.Thumbnail}
	}

	channelID := b.notifyChannel(guildID)
	if channelID == "" {
		return
	}
	p := b.GetOrCreatePlayer(guildID)
	buttons := bot.NowPlayingButtons(p.Status() == player.StatusPaused, p.LoopMode(), p.Autoplay())
	if err := bot.MessageEmbedComponents(b.dg, channelID, embed, buttons); err != nil {
		log.Printf("[WARN] Failed to notify guild %s: %v", guildID, err)
	}
}

func (b *Bot) AutoplayNext(guildID string, track parsers.Track) {
	b.sendEmbed(guildID, &discordgo.MessageEmbed{
		Description: "📻 Autoplay picked " + trackLink(track),
	})
}

func (b *Bot) QueueEmpty(guildID string) {
	b.sendEmbed(guildID, &discordgo.MessageEmbed{
		Description: "🏁 Queue finished.",
	})
}

func (b *Bot) PlaybackError(guildID string, track parsers.Track, err error) {
	b.sendEmbed(guildID, &discordgo.MessageEmbed{
		Description: fmt.Sprintf("⚠️ Could not play %s: %v", trackLink(track), err),
	})
}

func (b *Bot) Info(guildID, message string) {
	b.sendEmbed(guildID, &discordgo.MessageEmbed{Description: message})
}

func (b *Bot) sendEmbed(guildID string, embed *discordgo.MessageEmbed) {
	channelID := b.notifyChannel(guildID)
	if channelID == "" {
		return
	}
	if err := bot.MessageEmbed(b.dg, channelID, embed); err != nil {
		log.Printf("[WARN] Failed to notify guild %s: %v", guildID, err)
	}
}

func trackLink(track parsers.Track) string {
	switch {
	case track.Title != "" && track.URL != "":
		return fmt.Sprintf("[%s](%s)", track.Title, track.URL)
	case track.Title != "":
		return track.Title
	default:
		return track.URL
	}
}
