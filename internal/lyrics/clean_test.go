package lyrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Artist - Song (Official Video)", "Artist - Song"},
		{"Artist - Song [Official Audio]", "Artist - Song"},
		{"Artist - Song ft. Someone Else", "Artist - Song"},
		{"Artist - Song feat. Someone", "Artist - Song"},
		{"Artist - Song | Visualizer", "Artist - Song"},
		{"Song Lyrics", "Song"},
		{"Plain Title", "Plain Title"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CleanTitle(c.in), "input %q", c.in)
	}
}

func TestExtractMetadata(t *testing.T) {
	artist, song := ExtractMetadata("Daft Punk - Around the World (Official Video)", "whatever")
	assert.Equal(t, "Daft Punk", artist)
	assert.Equal(t, "Around the World", song)

	artist, song = ExtractMetadata("Around the World", "Daft Punk - Topic")
	assert.Equal(t, "Daft Punk", artist)
	assert.Equal(t, "Around the World", song)
}

func TestSplitLyricsShortText(t *testing.T) {
	chunks := SplitLyrics("short text", 4096)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitLyricsBreaksAtLines(t *testing.T) {
	lines := make([]string, 0, 40)
	for range 40 {
		lines = append(lines, strings.Repeat("x", 90))
	}
	text := strings.Join(lines, "\n")

	chunks := SplitLyrics(text, 1000)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 1000, "chunk %d too long", i)
		for _, line := range strings.Split(chunk, "\n") {
			assert.Len(t, line, 90, "chunk %d split mid-line", i)
		}
	}
	assert.Equal(t, text, strings.Join(chunks, "\n"))
}

func TestSplitLyricsOversizedLine(t *testing.T) {
	text := strings.Repeat("y", 250)
	chunks := SplitLyrics(text, 100)
	assert.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, ""))
}
