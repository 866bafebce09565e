package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	playlistsPerGuildLimit = 100
	tracksPerPlaylistLimit = 50
)

type PlaylistTrack struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	Uploader string `json:"uploader"`
}

type Playlist struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	Tracks    []PlaylistTrack `json:"tracks"`
}

// SavePlaylist stores a named playlist, replacing one with the same name.
// Names compare case-insensitively.
func (s *Storage) SavePlaylist(guildID, name, createdBy string, tracks []PlaylistTrack) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("playlist name cannot be empty")
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("playlist cannot be empty")
	}
	if len(tracks) > tracksPerPlaylistLimit {
		tracks = tracks[:tracksPerPlaylistLimit]
	}

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	playlist := Playlist{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		Tracks:    tracks,
	}

	replaced := false
	for i, existing := range record.Playlists {
		if strings.EqualFold(existing.Name, name) {
			record.Playlists[i] = playlist
			replaced = true
			break
		}
	}
	if !replaced {
		if len(record.Playlists) >= playlistsPerGuildLimit {
			return nil, fmt.Errorf("guild already has %d playlists", playlistsPerGuildLimit)
		}
		record.Playlists = append(record.Playlists, playlist)
	}

	s.ds.Add(guildID, record)
	return &playlist, nil
}

// GetPlaylist fetches a playlist by name, case-insensitively.
func (s *Storage) GetPlaylist(guildID, name string) (*Playlist, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	for _, playlist := range record.Playlists {
		if strings.EqualFold(playlist.Name, name) {
			return &playlist, nil
		}
	}
	return nil, fmt.Errorf("playlist '%s' not found", name)
}

// ListPlaylists returns all playlists saved for a guild.
func (s *Storage) ListPlaylists(guildID string) ([]Playlist, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.Playlists, nil
}

// DeletePlaylist removes a playlist by name, case-insensitively.
func (s *Storage) DeletePlaylist(guildID, name string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	for i, playlist := range record.Playlists {
		if strings.EqualFold(playlist.Name, name) {
			record.Playlists = append(record.Playlists[:i], record.Playlists[i+1:]...)
			s.ds.Add(guildID, record)
			return nil
		}
	}
	return fmt.Errorf("playlist '%s' not found", name)
}
