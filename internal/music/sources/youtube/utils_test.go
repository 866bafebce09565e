package youtube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                       "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://music.youtube.com/watch?v=dQw4w9WgXcQ&t=42": "dQw4w9WgXcQ",
		"https://example.com/other":                          "",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractVideoID(in), "input %q", in)
	}
}

func TestCleanVideoURL(t *testing.T) {
	in := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=RDdQw4w9WgXcQ&t=30"
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", CleanVideoURL(in))
	assert.Equal(t, "not a url", CleanVideoURL("not a url"))
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, isYouTubeURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.True(t, isYouTubeURL("https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, isYouTubeURL("https://music.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, isYouTubeURL("https://vimeo.com/12345"))
	assert.False(t, isYouTubeURL("plain text"))
}

func TestMoveToFront(t *testing.T) {
	list := []string{"a", "b", "c"}
	assert.Equal(t, []string{"b", "a", "c"}, MoveToFront(list, "b"))
	assert.Equal(t, []string{"a", "b", "c"}, MoveToFront(list, "missing"))
}

func TestParseColonDuration(t *testing.T) {
	assert.Equal(t, 3*time.Minute+20*time.Second, parseColonDuration("3:20"))
	assert.Equal(t, time.Hour+5*time.Minute+20*time.Second, parseColonDuration("1:05:20"))
	assert.Equal(t, time.Duration(0), parseColonDuration("live"))
}

func TestStripBrackets(t *testing.T) {
	assert.Equal(t, "Artist - Song ", stripBrackets("Artist - Song (Official Video)"))
	assert.Equal(t, "Song  Extended", stripBrackets("Song [Remix] Extended"))
}
