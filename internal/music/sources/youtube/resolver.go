package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/ppalone/ytsearch"
)

var (
	watchURLPattern  = regexp.MustCompile(`"url":"/watch\?v=([a-zA-Z0-9_-]{11})`)
	ErrNoVideoMatch  = errors.New("no video found for the given title")
	ErrEmptyPlaylist = errors.New("no video URLs found in the playlist")
)

// Resolver turns search queries and mix playlists into video URLs.
type Resolver struct {
	BaseURL string
	Client  *http.Client
	search  func(ctx context.Context, query string) ([]SearchResult, error)
}

func NewResolver() *Resolver {
	r := &Resolver{
		BaseURL: "https://www.youtube.com",
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	client := ytsearch.NewClient(nil)
	r.search = func(ctx context.Context, query string) ([]SearchResult, error) {
		res, err := client.Search(ctx, query)
		if err != nil {
			return nil, err
		}
		var out []SearchResult
		for _, v := range res.Results {
			if v.VideoID == "" {
				continue
			}
			out = append(out, SearchResult{
				VideoID:  v.VideoID,
				Title:    v.Title,
				Uploader: v.Channel,
				Duration: parseColonDuration(v.Duration),
			})
		}
		return out, nil
	}
	return r
}

// SearchResult is a single title-search hit.
type SearchResult struct {
	VideoID  string
	Title    string
	Uploader string
	Duration time.Duration
}

// Search runs a YouTube title search and returns up to limit results.
// When the search client fails or comes back empty, the results page is
// scraped directly so a broken client degrades instead of failing.
func (r *Resolver) Search(query string, limit int) ([]SearchResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, err := r.search(ctx, query)
	if err != nil || len(out) == 0 {
		if err != nil {
			log.Printf("[YouTube] Search client failed for %q, scraping results page: %v", query, err)
		}
		return r.scrapeSearch(query, limit)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// scrapeSearch pulls video IDs off the results page HTML. Titles are not
// recovered here; callers probe metadata separately.
func (r *Resolver) scrapeSearch(query string, limit int) ([]SearchResult, error) {
	resp, err := r.Client.Get(r.BaseURL + "/results?search_query=" + url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube search fetch failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []SearchResult
	for _, m := range watchURLPattern.FindAllStringSubmatch(string(body), -1) {
		if len(m) < 2 {
			continue
		}
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, SearchResult{VideoID: m[1]})
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	if len(out) == 0 {
		return nil, ErrNoVideoMatch
	}
	return out, nil
}

// ExtractMixVideos scrapes the watch page of a YouTube mix (RD playlist)
// and returns the video URLs it links to.
func (r *Resolver) ExtractMixVideos(mixURL string) ([]string, error) {
	resp, err := r.Client.Get(mixURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("YouTube mix fetch failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	matches := watchURLPattern.FindAllStringSubmatch(string(body), -1)
	var urls []string
	for _, m := range matches {
		if len(m) > 1 {
			urls = append(urls, "https://www.youtube.com/watch?v="+m[1])
		}
	}

	if len(urls) == 0 {
		return nil, ErrEmptyPlaylist
	}

	return removeDuplicates(urls), nil
}

func removeDuplicates(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	var result []string
	for _, u := range input {
		if _, exists := seen[u]; !exists {
			seen[u] = struct{}{}
			result = append(result, u)
		}
	}
	return result
}

// parseColonDuration parses duration strings like "3:20" or "1:05:20".
func parseColonDuration(s string) time.Duration {
	var h, m, sec int
	switch n, _ := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); n {
	case 3:
		return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second
	case 2:
		// two fields matched means m:ss landed in h and m
		return time.Duration(h)*time.Minute + time.Duration(m)*time.Second
	default:
		return 0
	}
}
