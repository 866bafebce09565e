package lyrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLrclibExactHit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/get", r.URL.Path)
		assert.Equal(t, "Daft Punk", r.URL.Query().Get("artist_name"))
		w.Write([]byte(`{"trackName":"Around the World","artistName":"Daft Punk","duration":428,"plainLyrics":"around the world"}`))
	}))
	defer srv.Close()

	l := NewLrclib()
	l.BaseURL = srv.URL

	text, err := l.Fetch(context.Background(), Query{Artist: "Daft Punk", Title: "Around the World"})
	require.NoError(t, err)
	assert.Equal(t, "around the world", text)
}

func TestLrclibSearchFallbackFiltersByDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/get":
			w.WriteHeader(http.StatusNotFound)
		case "/api/search":
			w.Write([]byte(`[
				{"trackName":"Song","artistName":"Artist","duration":95,"plainLyrics":"wrong cut"},
				{"trackName":"Song","artistName":"Artist","duration":181,"plainLyrics":"right cut"}
			]`))
		}
	}))
	defer srv.Close()

	l := NewLrclib()
	l.BaseURL = srv.URL

	text, err := l.Fetch(context.Background(), Query{Artist: "Artist", Title: "Song", Duration: 3 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, "right cut", text)
}

func TestLrclibSkipsInstrumental(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/get":
			w.WriteHeader(http.StatusNotFound)
		case "/api/search":
			w.Write([]byte(`[{"trackName":"Song","artistName":"Artist","duration":180,"instrumental":true}]`))
		}
	}))
	defer srv.Close()

	l := NewLrclib()
	l.BaseURL = srv.URL

	_, err := l.Fetch(context.Background(), Query{Artist: "Artist", Title: "Song"})
	assert.ErrorIs(t, err, ErrNotFound)
}
