package music

import (
	"testing"

	"omnia/internal/music/parsers"
	"omnia/internal/music/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextLoopModeCycles(t *testing.T) {
	assert.Equal(t, player.LoopSingle, nextLoopMode(player.LoopOff))
	assert.Equal(t, player.LoopQueue, nextLoopMode(player.LoopSingle))
	assert.Equal(t, player.LoopOff, nextLoopMode(player.LoopQueue))
}

func TestQueueDescription(t *testing.T) {
	c := &MusicCommand{}
	p := player.New("guild-1", player.Options{})

	_, ok := c.queueDescription(p)
	assert.False(t, ok)

	p.EnqueueTrack(parsers.Track{URL: "u-a", Title: "First"})
	p.EnqueueTrack(parsers.Track{URL: "u-b", Title: "Second"})

	desc, ok := c.queueDescription(p)
	require.True(t, ok)
	assert.Contains(t, desc, "First")
	assert.Contains(t, desc, "Second")
}
