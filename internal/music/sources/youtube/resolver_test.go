package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrapeTestResolver(t *testing.T, body string) *Resolver {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	r := NewResolver()
	r.BaseURL = srv.URL
	r.Client = srv.Client()
	return r
}

func TestSearchFallsBackToScrapeOnClientError(t *testing.T) {
	r := scrapeTestResolver(t, `{"url":"/watch?v=aaaaaaaaaaa"}{"url":"/watch?v=bbbbbbbbbbb"}`)
	r.search = func(ctx context.Context, query string) ([]SearchResult, error) {
		return nil, errors.New("search backend down")
	}

	results, err := r.Search("some song", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "aaaaaaaaaaa", results[0].VideoID)
	assert.Equal(t, "bbbbbbbbbbb", results[1].VideoID)
}

func TestSearchFallsBackToScrapeOnEmptyResults(t *testing.T) {
	r := scrapeTestResolver(t, `"url":"/watch?v=ccccccccccc"`)
	r.search = func(ctx context.Context, query string) ([]SearchResult, error) {
		return nil, nil
	}

	results, err := r.Search("some song", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "ccccccccccc", results[0].VideoID)
}

func TestScrapeSearchDedupsAndLimits(t *testing.T) {
	body := `"url":"/watch?v=aaaaaaaaaaa" "url":"/watch?v=aaaaaaaaaaa" "url":"/watch?v=bbbbbbbbbbb" "url":"/watch?v=ccccccccccc"`
	r := scrapeTestResolver(t, body)

	results, err := r.scrapeSearch("q", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "aaaaaaaaaaa", results[0].VideoID)
	assert.Equal(t, "bbbbbbbbbbb", results[1].VideoID)
}

func TestSearchNoMatchAnywhere(t *testing.T) {
	r := scrapeTestResolver(t, "<html>nothing to see</html>")
	r.search = func(ctx context.Context, query string) ([]SearchResult, error) {
		return nil, errors.New("search backend down")
	}

	_, err := r.Search("some song", 5)
	assert.ErrorIs(t, err, ErrNoVideoMatch)
}

func TestSearchClientResultsHonorLimit(t *testing.T) {
	r := NewResolver()
	r.search = func(ctx context.Context, query string) ([]SearchResult, error) {
		return []SearchResult{{VideoID: "aaaaaaaaaaa"}, {VideoID: "bbbbbbbbbbb"}, {VideoID: "ccccccccccc"}}, nil
	}

	results, err := r.Search("some song", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
