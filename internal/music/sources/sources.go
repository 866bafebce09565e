package sources

import "time"

const (
	SourceAuto    = "auto"
	SourceYouTube = "youtube"
)

// TrackInfo is the extractor's view of a track: enough metadata to show
// the user, plus a direct stream URL when command-time extraction got one.
type TrackInfo struct {
	URL              string
	Title            string
	Uploader         string
	Duration         time.Duration
	Thumbnail        string
	StreamURL        string
	SourceName       string
	AvailableParsers []string
}

type Source interface {
	// Match checks if this source can handle the given input
	Match(input string) bool

	// Resolve turns an input into one or more playable tracks
	Resolve(input string, selectedParser string) ([]TrackInfo, error)

	// SourceName returns the string identifier ("youtube", etc.)
	SourceName() string

	// AvailableParsers returns the list of parsers supported by this source
	AvailableParsers() []string
}
