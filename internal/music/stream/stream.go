package stream

import (
	"fmt"
	"io"
	"log"

	"omnia/internal/music/parsers"
	"omnia/internal/music/parsers/ffmpeg"
	"omnia/internal/music/parsers/kkdai"
	"omnia/internal/music/parsers/ytdlp"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960
)

// fastParser plays a stream URL extracted at command time, before any of
// the track's regular parsers get a chance to run.
const fastParser = "ffmpeg-link"

// defaultChain covers tracks restored from storage, which carry no
// parser list of their own. yt-dlp extracts from most sites.
var defaultChain = []string{"ytdlp-link", "ytdlp-pipe"}

var StreamersRegistry = map[string]parsers.Streamer{
	"ffmpeg-link": &ffmpeg.FFMPEGStreamer{},
	"kkdai-link":  &kkdai.KKDAIStreamer{},
	"ytdlp-link":  &ytdlp.YTDLPStreamer{},
	"ytdlp-pipe":  &ytdlp.YTDLPStreamer{},
}

func isPipeMode(parserName string) bool {
	switch parserName {
	case "ytdlp-pipe":
		return true
	default:
		return false
	}
}

// TrackStream couples a decoded PCM reader with the cleanup that stops
// its underlying processes.
type TrackStream struct {
	Reader  io.ReadCloser
	Cleanup func()
}

func (ts *TrackStream) Close() {
	if ts.Cleanup != nil {
		ts.Cleanup()
	}
	ts.Reader.Close()
}

// OpenStream starts the named parser for the track and returns the PCM
// stream. The parser name is recorded on the track for status output.
func OpenStream(track *parsers.Track, parserName string, seekSec float64) (*TrackStream, error) {
	streamer, ok := StreamersRegistry[parserName]
	if !ok {
		return nil, fmt.Errorf("unknown parser: %s", parserName)
	}

	var (
		reader  io.ReadCloser
		cleanup func()
		err     error
	)
	if isPipeMode(parserName) && streamer.SupportsPipe() {
		reader, cleanup, err = streamer.GetPipeStream(track, seekSec)
	} else {
		reader, cleanup, err = streamer.GetLinkStream(track, seekSec)
	}
	if err != nil {
		return nil, err
	}

	track.CurrentParser = parserName
	return &TrackStream{Reader: reader, Cleanup: cleanup}, nil
}

// parserChain orders the parsers to try for a track. A direct stream URL
// puts the fast path first so a track resolved at command time starts
// without a second extraction round-trip.
func parserChain(track *parsers.Track, seekSec float64) []string {
	var chain []string
	if track.StreamURL != "" && seekSec == 0 {
		chain = append(chain, fastParser)
	}
	if len(track.SourceInfo.AvailableParsers) > 0 {
		chain = append(chain, track.SourceInfo.AvailableParsers...)
	} else {
		chain = append(chain, defaultChain...)
	}
	return chain
}

// AutoOpenStream walks the track's parser chain until one produces a stream.
func AutoOpenStream(track *parsers.Track, seekSec float64) (*TrackStream, error) {
	chain := parserChain(track, seekSec)

	var lastErr error
	for _, name := range chain {
		ts, err := OpenStream(track, name, seekSec)
		if err != nil {
			log.Printf("[Stream] parser %s failed for %q: %v", name, track.Title, err)
			lastErr = err
			continue
		}
		return ts, nil
	}

	return nil, fmt.Errorf("all parsers failed: %w", lastErr)
}
