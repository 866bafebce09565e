package storage

import (
	"fmt"
	"path/filepath"
	"testing"

	"omnia/internal/music/player"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetPlaylist(t *testing.T) {
	s := newTestStorage(t)

	tracks := []PlaylistTrack{
		{URL: "u-a", Title: "a"},
		{URL: "u-b", Title: "b"},
	}
	saved, err := s.SavePlaylist("guild-1", "Chill", "user-1", tracks)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	got, err := s.GetPlaylist("guild-1", "chill")
	require.NoError(t, err)
	assert.Equal(t, "Chill", got.Name)
	assert.Len(t, got.Tracks, 2)
}

func TestSavePlaylistReplacesSameName(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.SavePlaylist("guild-1", "Mix", "user-1", []PlaylistTrack{{URL: "u-a"}})
	require.NoError(t, err)
	_, err = s.SavePlaylist("guild-1", "MIX", "user-2", []PlaylistTrack{{URL: "u-b"}, {URL: "u-c"}})
	require.NoError(t, err)

	playlists, err := s.ListPlaylists("guild-1")
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Len(t, playlists[0].Tracks, 2)
}

func TestSavePlaylistRejectsEmpty(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.SavePlaylist("guild-1", "", "user-1", []PlaylistTrack{{URL: "u"}})
	assert.Error(t, err)

	_, err = s.SavePlaylist("guild-1", "Empty", "user-1", nil)
	assert.Error(t, err)
}

func TestSavePlaylistTruncatesOversizedTrackList(t *testing.T) {
	s := newTestStorage(t)

	tracks := make([]PlaylistTrack, tracksPerPlaylistLimit+1)
	for i := range tracks {
		tracks[i] = PlaylistTrack{URL: fmt.Sprintf("u-%d", i)}
	}

	saved, err := s.SavePlaylist("guild-1", "Marathon", "user-1", tracks)
	require.NoError(t, err)
	assert.Len(t, saved.Tracks, tracksPerPlaylistLimit)

	got, err := s.GetPlaylist("guild-1", "Marathon")
	require.NoError(t, err)
	assert.Len(t, got.Tracks, tracksPerPlaylistLimit)
}

func TestSavePlaylistEnforcesGuildCap(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < playlistsPerGuildLimit; i++ {
		_, err := s.SavePlaylist("guild-1", fmt.Sprintf("list-%d", i), "user-1", []PlaylistTrack{{URL: "u"}})
		require.NoError(t, err)
	}

	_, err := s.SavePlaylist("guild-1", "one-too-many", "user-1", []PlaylistTrack{{URL: "u"}})
	assert.Error(t, err)

	// replacing an existing name is still allowed at the cap
	_, err = s.SavePlaylist("guild-1", "list-0", "user-2", []PlaylistTrack{{URL: "u-new"}})
	assert.NoError(t, err)
}

func TestDeletePlaylistCaseInsensitive(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.SavePlaylist("guild-1", "Party", "user-1", []PlaylistTrack{{URL: "u"}})
	require.NoError(t, err)

	require.NoError(t, s.DeletePlaylist("guild-1", "PARTY"))
	assert.Error(t, s.DeletePlaylist("guild-1", "Party"))
}

func TestPlayerSettingsRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	settings, err := s.PlayerSettings("guild-1")
	require.NoError(t, err)
	assert.Equal(t, player.Settings{}, settings)

	want := player.Settings{LoopMode: player.LoopQueue, Autoplay: true, ShuffleMode: 1}
	require.NoError(t, s.SavePlayerSettings("guild-1", want))

	got, err := s.PlayerSettings("guild-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCommandHistoryCapped(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		require.NoError(t, s.AppendCommandToHistory("guild-1", CommandHistoryRecord{Command: "music"}))
	}

	history, err := s.FetchCommandHistory("guild-1")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(history), commandHistoryLimit+1)
}
