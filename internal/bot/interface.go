package bot

import "omnia/internal/music/player"

// BotVoice is what music commands need from the running bot.
type BotVoice interface {
	GetOrCreatePlayer(guildID string) *player.Player
	FindUserVoiceState(guildID, userID string) (string, error)
}
