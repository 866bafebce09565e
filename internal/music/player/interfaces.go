package player

import (
	"omnia/internal/music/parsers"
	"omnia/internal/music/sources"
)

// Conn is an active voice connection.
type Conn interface {
	ChannelID() string
	OpusSend() chan<- []byte
	Speaking(bool) error
	Disconnect() error
}

// Voice joins guild voice channels.
type Voice interface {
	Join(guildID, channelID string) (Conn, error)
}

// Resolver turns user input into playable track metadata.
type Resolver interface {
	Resolve(input, selectedSource, selectedParser string) ([]sources.TrackInfo, error)
}

// RelatedFinder suggests candidate follow-up tracks for a finished seed.
// The player deduplicates against its own history and queue.
type RelatedFinder interface {
	Related(seedURL, seedTitle string) ([]sources.TrackInfo, error)
}

// Notifier pushes playback events to the guild's last used text channel.
// All methods are fire-and-forget.
type Notifier interface {
	NowPlaying(guildID string, track parsers.Track)
	AutoplayNext(guildID string, track parsers.Track)
	QueueEmpty(guildID string)
	PlaybackError(guildID string, track parsers.Track, err error)
	Info(guildID, message string)
}

// Settings is the per-guild playback configuration that survives restarts.
type Settings struct {
	LoopMode    LoopMode `json:"loop_mode"`
	Autoplay    bool     `json:"autoplay"`
	ShuffleMode int      `json:"shuffle_mode"`
}

// SettingsStore persists per-guild playback settings.
type SettingsStore interface {
	PlayerSettings(guildID string) (Settings, error)
	SavePlayerSettings(guildID string, s Settings) error
}
