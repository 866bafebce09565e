package queue

import (
	"sort"
	"testing"

	"omnia/internal/music/parsers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTracks(titles ...string) []parsers.Track {
	tracks := make([]parsers.Track, len(titles))
	for i, t := range titles {
		tracks[i] = parsers.Track{Title: t}
	}
	return tracks
}

func titles(tracks []parsers.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Title
	}
	return out
}

func TestAddAndNextOrder(t *testing.T) {
	m := New()
	for _, tr := range makeTracks("a", "b", "c") {
		m.Add(tr)
	}

	assert.Equal(t, 3, m.Len())

	first, err := m.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Title)

	second, err := m.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Title)

	assert.Equal(t, 1, m.Len())
}

func TestNextOnEmptyQueue(t *testing.T) {
	m := New()
	_, err := m.Next()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestAddReturnsPosition(t *testing.T) {
	m := New()
	assert.Equal(t, 1, m.Add(parsers.Track{Title: "a"}))
	assert.Equal(t, 2, m.Add(parsers.Track{Title: "b"}))
}

func TestPutFrontPreemptsQueue(t *testing.T) {
	m := New()
	m.Add(parsers.Track{Title: "a"})
	m.Add(parsers.Track{Title: "b"})
	m.PutFront(parsers.Track{Title: "current"})

	next, err := m.Next()
	require.NoError(t, err)
	assert.Equal(t, "current", next.Title)
}

func TestRemove(t *testing.T) {
	m := New()
	for _, tr := range makeTracks("a", "b", "c") {
		m.Add(tr)
	}

	removed, err := m.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.Title)
	assert.Equal(t, []string{"a", "c"}, titles(m.List(0)))

	_, err = m.Remove(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestMove(t *testing.T) {
	m := New()
	for _, tr := range makeTracks("a", "b", "c", "d") {
		m.Add(tr)
	}

	moved, err := m.Move(4, 1)
	require.NoError(t, err)
	assert.Equal(t, "d", moved.Title)
	assert.Equal(t, []string{"d", "a", "b", "c"}, titles(m.List(0)))

	_, err = m.Move(1, 9)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestShuffleOffRestoresSubmissionOrder(t *testing.T) {
	m := New()
	for _, tr := range makeTracks("a", "b", "c", "d", "e", "f") {
		m.Add(tr)
	}

	require.NoError(t, m.Shuffle(ShuffleStandard))
	require.NoError(t, m.Shuffle(ShuffleOff))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, titles(m.List(0)))
}

func TestShuffleKeepsAllTracks(t *testing.T) {
	for _, mode := range []int{ShuffleStandard, ShuffleRiffle} {
		m := New()
		want := []string{"a", "b", "c", "d", "e", "f", "g"}
		for _, tr := range makeTracks(want...) {
			m.Add(tr)
		}

		require.NoError(t, m.Shuffle(mode))

		got := titles(m.List(0))
		sort.Strings(got)
		assert.Equal(t, want, got, "mode %d", mode)
	}
}

func TestShuffleUnknownMode(t *testing.T) {
	m := New()
	assert.Error(t, m.Shuffle(7))
}

func TestListLimit(t *testing.T) {
	m := New()
	for _, tr := range makeTracks("a", "b", "c") {
		m.Add(tr)
	}
	assert.Len(t, m.List(2), 2)
	assert.Len(t, m.List(0), 3)
}

func TestClear(t *testing.T) {
	m := New()
	m.Add(parsers.Track{Title: "a"})
	m.Clear()
	assert.Equal(t, 0, m.Len())
}
