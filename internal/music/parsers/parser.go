package parsers

import (
	"fmt"
	"time"

	"omnia/internal/music/sources"
)

// Track is a queued playable item. InsertID preserves the original
// enqueue order so shuffle-off can restore it.
type Track struct {
	URL           string
	Title         string
	Uploader      string
	Duration      time.Duration
	Thumbnail     string
	StreamURL     string
	CurrentParser string
	RequesterID   string
	RequesterName string
	InsertID      int64
	SourceInfo    sources.TrackInfo
}

func FromInfo(info sources.TrackInfo) Track {
	return Track{
		URL:        info.URL,
		Title:      info.Title,
		Uploader:   info.Uploader,
		Duration:   info.Duration,
		Thumbnail:  info.Thumbnail,
		StreamURL:  info.StreamURL,
		SourceInfo: info,
	}
}

// DurationString formats as M:SS or H:MM:SS; zero duration means a live stream.
func (t *Track) DurationString() string {
	if t.Duration <= 0 {
		return "Live"
	}
	total := int(t.Duration.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
