package discord

import (
	"fmt"

	"omnia/internal/music/player"

	"github.com/bwmarrin/discordgo"
)

// Join connects the bot to a guild voice channel, deafened.
func (b *Bot) Join(guildID, channelID string) (player.Conn, error) {
	vc, err := b.dg.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("failed to join voice channel %s: %w", channelID, err)
	}
	return &voiceConn{vc: vc}, nil
}

// voiceConn adapts a discordgo voice connection to the player.
type voiceConn struct {
	vc *discordgo.VoiceConnection
}

func (c *voiceConn) ChannelID() string {
	return c.vc.ChannelID
}

func (c *voiceConn) OpusSend() chan<- []byte {
	return c.vc.OpusSend
}

func (c *voiceConn) Speaking(on bool) error {
	return c.vc.Speaking(on)
}

func (c *voiceConn) Disconnect() error {
	return c.vc.Disconnect()
}
