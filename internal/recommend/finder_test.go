package recommend

import (
	"errors"
	"testing"

	"omnia/internal/music/sources"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVideoRelated struct {
	infos []sources.TrackInfo
	err   error
}

func (s *stubVideoRelated) Related(videoURL, title string) ([]sources.TrackInfo, error) {
	return s.infos, s.err
}

func (s *stubVideoRelated) AvailableParsers() []string {
	return []string{"ytdlp-link"}
}

func TestFinderPrefersVideoRelated(t *testing.T) {
	yt := &stubVideoRelated{infos: []sources.TrackInfo{{URL: "u-x", Title: "x"}}}
	f := NewFinder(yt, NewTasteDive(""), NewSpotify("", ""))

	got, err := f.Related("u-seed", "Seed Track")
	require.NoError(t, err)
	assert.Equal(t, "u-x", got[0].URL)
}

func TestFinderNoFallbackWithoutCredentials(t *testing.T) {
	yt := &stubVideoRelated{err: errors.New("mix unavailable")}
	f := NewFinder(yt, NewTasteDive(""), NewSpotify("", ""))

	_, err := f.Related("u-seed", "Seed Track")
	assert.Error(t, err)
}
