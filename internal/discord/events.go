package discord

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// onVoiceStateUpdate watches for the bot being left alone in a voice
// channel. A short grace period lets listeners hop channels without the
// player bailing out.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.UserID == s.State.User.ID {
		return
	}

	b.mu.RLock()
	p, ok := b.players[v.GuildID]
	b.mu.RUnlock()
	if !ok || !p.Connected() {
		return
	}

	channelID := p.ChannelID()
	if b.listenerCount(v.GuildID, channelID) > 0 {
		b.cancelAloneTimer(v.GuildID)
		return
	}

	b.mu.Lock()
	if _, pending := b.aloneTimers[v.GuildID]; pending {
		b.mu.Unlock()
		return
	}
	guildID := v.GuildID
	b.aloneTimers[guildID] = time.AfterFunc(b.cfg.AloneGrace, func() {
		b.cancelAloneTimer(guildID)

		b.mu.RLock()
		p, ok := b.players[guildID]
		b.mu.RUnlock()
		if !ok || !p.Connected() {
			return
		}
		if b.listenerCount(guildID, p.ChannelID()) > 0 {
			return
		}

		log.Printf("[INFO] Alone in voice channel of guild %s, leaving", guildID)
		b.Info(guildID, "Everyone left, so did I.")
		if err := p.Disconnect(); err != nil {
			log.Printf("[ERR] Failed to disconnect from guild %s: %v", guildID, err)
		}
	})
	b.mu.Unlock()
}

// listenerCount counts non-bot users in a voice channel.
func (b *Bot) listenerCount(guildID, channelID string) int {
	if channelID == "" {
		return 0
	}
	guild, err := b.dg.State.Guild(guildID)
	if err != nil {
		return 0
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID || vs.UserID == b.dg.State.User.ID {
			continue
		}
		member, err := b.dg.State.Member(guildID, vs.UserID)
		if err == nil && member.User != nil && member.User.Bot {
			continue
		}
		count++
	}
	return count
}

func (b *Bot) cancelAloneTimer(guildID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.aloneTimers[guildID]; ok {
		t.Stop()
		delete(b.aloneTimers, guildID)
	}
}
