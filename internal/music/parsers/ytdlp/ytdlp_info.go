package ytdlp

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"omnia/internal/music/parsers"
)

type ytdlpFragment struct {
	Duration float64 `json:"duration"`
}

type ytdlpFormat struct {
	URL       string          `json:"url"`
	Fragments []ytdlpFragment `json:"fragments,omitempty"`
}

type ytdlpInfo struct {
	Title     string        `json:"title"`
	Uploader  string        `json:"uploader"`
	Thumbnail string        `json:"thumbnail"`
	Duration  float64       `json:"duration"`
	Formats   []ytdlpFormat `json:"formats"`
	URL       string        `json:"url"`
}

// fetchInfo runs yt-dlp -j and fills in track metadata that the
// command-time extraction did not provide.
func fetchInfo(track *parsers.Track) (*ytdlpInfo, error) {
	args := []string{"-j", "-f", "bestaudio"}
	args = append(args, cookiesArgs()...)
	args = append(args, track.URL)

	output, err := exec.Command("yt-dlp", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp info error: %w", err)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}

	// If the root duration is empty, try the first fragment of the first format
	if info.Duration == 0 && len(info.Formats) > 0 && len(info.Formats[0].Fragments) > 0 {
		info.Duration = info.Formats[0].Fragments[0].Duration
	}

	track.Duration = time.Duration(info.Duration * float64(time.Second))
	if track.Title == "" {
		track.Title = info.Title
	}
	if track.Uploader == "" {
		track.Uploader = info.Uploader
	}
	if track.Thumbnail == "" {
		track.Thumbnail = info.Thumbnail
	}

	return &info, nil
}

func (i *ytdlpInfo) streamURL() string {
	link := strings.TrimSpace(i.URL)
	if link == "" && len(i.Formats) > 0 {
		link = strings.TrimSpace(i.Formats[0].URL)
	}
	return link
}
