package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const geniusAPIURL = "https://api.genius.com"

// Genius resolves lyrics through the Genius search API and scrapes the
// song page, since the API itself does not serve lyrics text.
type Genius struct {
	APIURL  string
	Token   string
	Client  *http.Client
	limiter *rate.Limiter
}

func NewGenius(token string) *Genius {
	return &Genius{
		APIURL: geniusAPIURL,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
		// stay well under the documented per-token quota
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

func (g *Genius) Name() string { return "genius" }

type geniusSearchResponse struct {
	Response struct {
		Hits []struct {
			Result struct {
				Title       string `json:"title"`
				ArtistNames string `json:"artist_names"`
				URL         string `json:"url"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

func (g *Genius) Fetch(ctx context.Context, q Query) (string, error) {
	if g.Token == "" {
		return "", ErrNotFound
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	pageURL, err := g.searchSongURL(ctx, q)
	if err != nil {
		return "", err
	}
	return g.scrapeLyrics(ctx, pageURL)
}

func (g *Genius) searchSongURL(ctx context.Context, q Query) (string, error) {
	params := url.Values{}
	params.Set("q", strings.TrimSpace(q.Artist+" "+q.Title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.APIURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.Token)

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genius search status %d", resp.StatusCode)
	}

	var search geniusSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", err
	}

	wantTitle := strings.ToLower(q.Title)
	for _, hit := range search.Response.Hits {
		if strings.Contains(strings.ToLower(hit.Result.Title), wantTitle) {
			return hit.Result.URL, nil
		}
	}
	if len(search.Response.Hits) > 0 {
		return search.Response.Hits[0].Result.URL, nil
	}
	return "", ErrNotFound
}

var (
	lyricsContainerPattern = regexp.MustCompile(`(?s)<div[^>]+data-lyrics-container="true"[^>]*>(.*?)</div>`)
	lineBreakPattern       = regexp.MustCompile(`<br\s*/?>`)
	htmlTagPattern         = regexp.MustCompile(`<[^>]+>`)
)

func (g *Genius) scrapeLyrics(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; lyrics-fetcher)")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("genius page status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", err
	}

	containers := lyricsContainerPattern.FindAllStringSubmatch(string(body), -1)
	if len(containers) == 0 {
		return "", ErrNotFound
	}

	var sb strings.Builder
	for _, c := range containers {
		text := lineBreakPattern.ReplaceAllString(c[1], "\n")
		text = htmlTagPattern.ReplaceAllString(text, "")
		sb.WriteString(html.UnescapeString(text))
		sb.WriteByte('\n')
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrNotFound
	}
	return out, nil
}
