package stream

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"omnia/internal/music/parsers"

	"github.com/stretchr/testify/assert"
)

func TestParserChainFastPathFirst(t *testing.T) {
	track := &parsers.Track{
		URL:       "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		StreamURL: "https://cdn.example.com/audio",
	}
	track.SourceInfo.AvailableParsers = []string{"kkdai-link", "ytdlp-link"}

	assert.Equal(t, []string{"ffmpeg-link", "kkdai-link", "ytdlp-link"}, parserChain(track, 0))

	// seeking needs a fresh extraction, the cached URL is skipped
	assert.Equal(t, []string{"kkdai-link", "ytdlp-link"}, parserChain(track, 30))
}

func TestParserChainDefaultsWithoutSource(t *testing.T) {
	track := &parsers.Track{URL: "https://example.com/some-track"}
	assert.Equal(t, []string{"ytdlp-link", "ytdlp-pipe"}, parserChain(track, 0))
}

func TestOpenStreamUnknownParser(t *testing.T) {
	track := &parsers.Track{URL: "https://example.com/watch?v=abc"}
	_, err := OpenStream(track, "no-such-parser", 0)
	assert.Error(t, err)
}

func TestTrackStreamCloseRunsCleanup(t *testing.T) {
	cleaned := false
	ts := &TrackStream{
		Reader:  io.NopCloser(strings.NewReader("pcm")),
		Cleanup: func() { cleaned = true },
	}
	ts.Close()
	assert.True(t, cleaned)
}

func TestControlsNilSafe(t *testing.T) {
	var c *Controls
	assert.False(t, c.stopped())
	assert.False(t, c.paused())

	c = &Controls{}
	assert.False(t, c.stopped())
	assert.False(t, c.paused())
}

func TestStreamToOpusStopUnblocksSend(t *testing.T) {
	// enough zero PCM for several frames, nobody reads opusSend
	reader := bytes.NewReader(make([]byte, frameSize*channels*2*10))
	opusSend := make(chan []byte)
	stop := make(chan struct{})
	controls := &Controls{Stop: stop}

	done := make(chan error, 1)
	go func() {
		done <- StreamToOpus(reader, opusSend, controls)
	}()

	time.Sleep(50 * time.Millisecond)
	close(stop)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("send loop did not return after stop")
	}
}

func TestControlsStopped(t *testing.T) {
	stop := make(chan struct{})
	c := &Controls{Stop: stop, Paused: func() bool { return true }}

	assert.False(t, c.stopped())
	assert.True(t, c.paused())

	close(stop)
	assert.True(t, c.stopped())
}
