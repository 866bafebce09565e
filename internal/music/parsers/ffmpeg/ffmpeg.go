package ffmpeg

import (
	"io"

	"omnia/internal/music/parsers"
)

const (
	channels   = 2
	sampleRate = 48000
)

// FFMPEGStreamer plays a direct stream URL that command-time extraction
// already produced, skipping the extractor entirely (the fast first play).
type FFMPEGStreamer struct{}

func (s *FFMPEGStreamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ffmpegLink(track, seekSec)
}

func (s *FFMPEGStreamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ffmpegLink(track, seekSec)
}

func (s *FFMPEGStreamer) SupportsPipe() bool {
	return false
}
