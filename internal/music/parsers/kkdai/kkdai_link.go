package kkdai

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"

	"omnia/internal/music/parsers"

	"github.com/kkdai/youtube/v2"
)

var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/)([a-zA-Z0-9_-]{11})`)

func extractYouTubeID(url string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return "", errors.New("[kkdai-link] could not extract video ID from URL")
	}
	return m[1], nil
}

func kkdaiLink(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	videoID, err := extractYouTubeID(track.URL)
	if err != nil {
		return nil, nil, err
	}

	client := &youtube.Client{}
	video, err := client.GetVideo(videoID)
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-link] youtube client error: %w", err)
	}

	track.Duration = video.Duration
	if track.Title == "" {
		track.Title = video.Title
	}
	if track.Uploader == "" {
		track.Uploader = video.Author
	}
	if track.Thumbnail == "" && len(video.Thumbnails) > 0 {
		track.Thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return nil, nil, errors.New("[kkdai-link] no audio formats found for video")
	}

	link, err := client.GetStreamURL(video, &formats[0])
	if err != nil {
		return nil, nil, fmt.Errorf("[kkdai-link] get stream URL error: %w", err)
	}

	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
		"-i", link,
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := ffmpeg.Start(); err != nil {
		return nil, nil, fmt.Errorf("command start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
	}

	return reader, cleanup, nil
}
