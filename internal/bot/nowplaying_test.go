package bot

import (
	"testing"

	"omnia/internal/music/player"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttonByID(t *testing.T, rows []discordgo.MessageComponent, customID string) discordgo.Button {
	t.Helper()
	for _, row := range rows {
		ar, ok := row.(discordgo.ActionsRow)
		require.True(t, ok)
		for _, c := range ar.Components {
			if btn, ok := c.(discordgo.Button); ok && btn.CustomID == customID {
				return btn
			}
		}
	}
	t.Fatalf("no button with custom ID %s", customID)
	return discordgo.Button{}
}

func TestNowPlayingButtonsReflectState(t *testing.T) {
	rows := NowPlayingButtons(false, player.LoopOff, false)
	require.Len(t, rows, 2)

	assert.Contains(t, buttonByID(t, rows, "music:pause").Label, "Pause")
	assert.Equal(t, discordgo.SecondaryButton, buttonByID(t, rows, "music:loop").Style)
	assert.NotContains(t, buttonByID(t, rows, "music:autoplay").Label, "ON")

	rows = NowPlayingButtons(true, player.LoopSingle, true)
	assert.Contains(t, buttonByID(t, rows, "music:pause").Label, "Resume")
	assert.Contains(t, buttonByID(t, rows, "music:loop").Label, "Loop: 1")
	assert.Contains(t, buttonByID(t, rows, "music:autoplay").Label, "ON")

	rows = NowPlayingButtons(false, player.LoopQueue, false)
	assert.Contains(t, buttonByID(t, rows, "music:loop").Label, "Loop: All")
}

func TestNowPlayingButtonsCoverAllActions(t *testing.T) {
	rows := NowPlayingButtons(false, player.LoopOff, false)
	for _, id := range []string{"music:pause", "music:skip", "music:stop", "music:loop", "music:autoplay", "music:queue"} {
		buttonByID(t, rows, id)
	}
}
