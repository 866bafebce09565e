package ytdlp

import (
	"io"
	"os"
	"sync"

	"omnia/internal/music/parsers"
)

const (
	channels   = 2
	sampleRate = 48000
)

var (
	cookiesMu   sync.RWMutex
	cookiesFile string
)

// SetCookiesFile points yt-dlp at a Netscape cookies.txt. The file is
// only passed along when it actually exists.
func SetCookiesFile(path string) {
	cookiesMu.Lock()
	defer cookiesMu.Unlock()
	cookiesFile = path
}

func cookiesArgs() []string {
	cookiesMu.RLock()
	path := cookiesFile
	cookiesMu.RUnlock()

	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return []string{"--cookies", path}
}

type YTDLPStreamer struct{}

func (s *YTDLPStreamer) GetLinkStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ytdlpLink(track, seekSec)
}

func (s *YTDLPStreamer) GetPipeStream(track *parsers.Track, seekSec float64) (io.ReadCloser, func(), error) {
	return ytdlpPipe(track, seekSec)
}

func (s *YTDLPStreamer) SupportsPipe() bool {
	return true
}
