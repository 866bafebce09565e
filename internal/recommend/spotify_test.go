package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spotifyTestClient(t *testing.T, api http.HandlerFunc) (*Spotify, *int) {
	t.Helper()

	tokenCalls := 0
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		w.Write([]byte(`{"access_token":"token-1","expires_in":3600}`))
	}))
	t.Cleanup(auth.Close)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	sp := NewSpotify("client-id", "client-secret")
	sp.AuthURL = auth.URL
	sp.BaseURL = apiSrv.URL
	return sp, &tokenCalls
}

func TestSpotifyRecommendTracks(t *testing.T) {
	sp, tokenCalls := spotifyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/search"):
			assert.Equal(t, "seed song", r.URL.Query().Get("q"))
			w.Write([]byte(`{"tracks":{"items":[{"id":"seed-id"}]}}`))
		case strings.HasPrefix(r.URL.Path, "/v1/recommendations"):
			assert.Equal(t, "seed-id", r.URL.Query().Get("seed_tracks"))
			w.Write([]byte(`{"tracks":[
				{"name":"Song A","artists":[{"name":"Artist A"}]},
				{"name":"Song B","artists":[{"name":"Artist B"}]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	})

	recs, err := sp.RecommendTracks(context.Background(), "seed song", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Artist A Song A", recs[0].Query())
	assert.Equal(t, 1, *tokenCalls)

	// second call reuses the cached token
	_, err = sp.RecommendTracks(context.Background(), "seed song", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, *tokenCalls)
}

func TestSpotifyRecommendTracksNoSeedHit(t *testing.T) {
	sp, _ := spotifyTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tracks":{"items":[]}}`))
	})

	_, err := sp.RecommendTracks(context.Background(), "obscure query", 2)
	assert.Error(t, err)
}

func TestSpotifyNotConfigured(t *testing.T) {
	sp := NewSpotify("", "")
	assert.False(t, sp.Configured())

	_, err := sp.RecommendTracks(context.Background(), "anything", 2)
	assert.Error(t, err)
}

func TestSpotifyTokenFailure(t *testing.T) {
	auth := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Basic "))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer auth.Close()

	sp := NewSpotify("id", "secret")
	sp.AuthURL = auth.URL

	_, err := sp.RecommendTracks(context.Background(), "anything", 2)
	assert.Error(t, err)
}
