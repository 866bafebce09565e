package kkdai

import (
	"io"

	"omnia/internal/music/parsers"
)

const (
	channels   = 2
	sampleRate = 48000
)

// KKDAIStreamer extracts with the pure-Go youtube client, which skips the
// yt-dlp process spawn and is the low-latency path.
type KKDAIStreamer struct{}

func (s *KKDAIStreamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiLink(track, seekSec)
}

func (s *KKDAIStreamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return kkdaiLink(track, seekSec)
}

func (s *KKDAIStreamer) SupportsPipe() bool {
	return false
}
