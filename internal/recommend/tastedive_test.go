package recommend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarArtistsFiltersJunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/similar", r.URL.Path)
		assert.Equal(t, "music:Daft Punk", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("k"))
		w.Write([]byte(`{"similar": {"results": [
			{"name": "Justice", "type": "music"},
			{"name": "Daft Punk Greatest Hits", "type": "music"},
			{"name": "Now That's What I Call A Soundtrack", "type": "music"},
			{"name": "Some Movie", "type": "movie"},
			{"name": "Air", "type": "music"}
		]}}`))
	}))
	defer srv.Close()

	td := NewTasteDive("test-key")
	td.BaseURL = srv.URL

	names, err := td.SimilarArtists(context.Background(), "Daft Punk", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Justice", "Air"}, names)
}

func TestSimilarArtistsLegacyCasing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Similar": {"Results": [{"Name": "Justice", "Type": "music"}]}}`))
	}))
	defer srv.Close()

	td := NewTasteDive("test-key")
	td.BaseURL = srv.URL

	names, err := td.SimilarArtists(context.Background(), "Daft Punk", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"Justice"}, names)
}

func TestSimilarArtistsNoKey(t *testing.T) {
	td := NewTasteDive("")
	_, err := td.SimilarArtists(context.Background(), "Daft Punk", 5)
	assert.Error(t, err)
}

func TestIsJunk(t *testing.T) {
	assert.True(t, isJunk("The Best Of Queen"))
	assert.True(t, isJunk("Various Artists"))
	assert.False(t, isJunk("Queen"))
}
