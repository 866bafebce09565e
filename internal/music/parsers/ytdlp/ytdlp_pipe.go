package ytdlp

import (
	"fmt"
	"io"
	"os/exec"

	"omnia/internal/music/parsers"
)

func ytdlpPipe(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	if _, err := fetchInfo(track); err != nil {
		return nil, nil, err
	}

	args := []string{"-o", "-", "-f", "bestaudio"}
	args = append(args, cookiesArgs()...)
	args = append(args, track.URL)

	ytdlp := exec.Command("yt-dlp", args...)
	ffmpeg := exec.Command("ffmpeg",
		"-ss", fmt.Sprintf("%.3f", seekSec),
		"-i", "pipe:0",
		"-f", "s16le",
		"-ar", fmt.Sprintf("%d", sampleRate),
		"-ac", fmt.Sprintf("%d", channels),
		"-loglevel", "warning",
		"pipe:1",
	)

	ffmpegIn, err := ytdlp.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("yt-dlp stdout pipe error: %w", err)
	}
	ffmpeg.Stdin = ffmpegIn

	reader, err := ffmpeg.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("ffmpeg stdout pipe error: %w", err)
	}

	if err := ytdlp.Start(); err != nil {
		return nil, nil, fmt.Errorf("yt-dlp start error: %w", err)
	}
	if err := ffmpeg.Start(); err != nil {
		ytdlp.Process.Kill()
		return nil, nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	cleanup := func() {
		ffmpeg.Process.Kill()
		ytdlp.Process.Kill()
	}

	return reader, cleanup, nil
}
