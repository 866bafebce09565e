package ffmpeg

import (
	"errors"
	"fmt"
	"io"
	"os/exec"

	"omnia/internal/music/parsers"
)

func ffmpegLink(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	link := track.StreamURL
	if link == "" {
		return nil, nil, errors.New("[ffmpeg-link] track has no direct stream URL")
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
