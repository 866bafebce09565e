package bot

import (
	"omnia/internal/music/player"

	"github.com/bwmarrin/discordgo"
)

// NowPlayingButtons builds the control rows attached to Now Playing
// messages. Labels and styles track the player state they toggle.
func NowPlayingButtons(paused bool, mode player.LoopMode, autoplay bool) []discordgo.MessageComponent {
	pause := discordgo.Button{Label: "⏸️ Pause", Style: discordgo.SecondaryButton, CustomID: "music:pause"}
	if paused {
		pause = discordgo.Button{Label: "▶️ Resume", Style: discordgo.SuccessButton, CustomID: "music:pause"}
	}

	loop := discordgo.Button{Label: "🔁 Loop", Style: discordgo.SecondaryButton, CustomID: "music:loop"}
	switch mode {
	case player.LoopSingle:
		loop = discordgo.Button{Label: "🔂 Loop: 1", Style: discordgo.PrimaryButton, CustomID: "music:loop"}
	case player.LoopQueue:
		loop = discordgo.Button{Label: "🔁 Loop: All", Style: discordgo.PrimaryButton, CustomID: "music:loop"}
	}

	auto := discordgo.Button{Label: "🔄 Autoplay", Style: discordgo.SecondaryButton, CustomID: "music:autoplay"}
	if autoplay {
		auto = discordgo.Button{Label: "🔄 Autoplay: ON", Style: discordgo.SuccessButton, CustomID: "music:autoplay"}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			pause,
			discordgo.Button{Label: "⏭️ Skip", Style: discordgo.PrimaryButton, CustomID: "music:skip"},
			discordgo.Button{Label: "⏹️ Stop", Style: discordgo.DangerButton, CustomID: "music:stop"},
		}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			loop,
			auto,
			discordgo.Button{Label: "📜 Queue", Style: discordgo.SecondaryButton, CustomID: "music:queue"},
		}},
	}
}
