package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	spotifyDefaultAuthURL = "https://accounts.spotify.com/api/token"
	spotifyDefaultAPIURL  = "https://api.spotify.com"
)

// Spotify recommends follow-up tracks through the recommendations API,
// seeded by a track search. Uses the client-credentials flow; the token
// is cached until shortly before it expires.
type Spotify struct {
	AuthURL      string
	BaseURL      string
	ClientID     string
	ClientSecret string
	Client       *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewSpotify(clientID, clientSecret string) *Spotify {
	return &Spotify{
		AuthURL:      spotifyDefaultAuthURL,
		BaseURL:      spotifyDefaultAPIURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether credentials were provided.
func (sp *Spotify) Configured() bool {
	return sp != nil && sp.ClientID != "" && sp.ClientSecret != ""
}

type spotifyTrack struct {
	Artist string
	Name   string
}

func (t spotifyTrack) Query() string {
	return t.Artist + " " + t.Name
}

// RecommendTracks searches for the seed query and asks for tracks
// similar to the best hit.
func (sp *Spotify) RecommendTracks(ctx context.Context, seedQuery string, limit int) ([]spotifyTrack, error) {
	if !sp.Configured() {
		return nil, fmt.Errorf("spotify credentials not configured")
	}

	token, err := sp.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	seedID, err := sp.searchTrackID(ctx, token, seedQuery)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("seed_tracks", seedID)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var out struct {
		Tracks []struct {
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"tracks"`
	}
	if err := sp.getJSON(ctx, token, "/v1/recommendations?"+params.Encode(), &out); err != nil {
		return nil, err
	}

	tracks := make([]spotifyTrack, 0, len(out.Tracks))
	for _, t := range out.Tracks {
		if t.Name == "" || len(t.Artists) == 0 {
			continue
		}
		tracks = append(tracks, spotifyTrack{Artist: t.Artists[0].Name, Name: t.Name})
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("spotify returned no recommendations")
	}
	return tracks, nil
}

func (sp *Spotify) searchTrackID(ctx context.Context, token, query string) (string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", "1")

	var out struct {
		Tracks struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"tracks"`
	}
	if err := sp.getJSON(ctx, token, "/v1/search?"+params.Encode(), &out); err != nil {
		return "", err
	}
	if len(out.Tracks.Items) == 0 {
		return "", fmt.Errorf("spotify found no track for %q", query)
	}
	return out.Tracks.Items[0].ID, nil
}

func (sp *Spotify) getJSON(ctx context.Context, token, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sp.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := sp.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spotify status %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (sp *Spotify) accessToken(ctx context.Context) (string, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.token != "" && time.Now().Before(sp.tokenExpiry) {
		return sp.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sp.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(sp.ClientID, sp.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := sp.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify token status %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("spotify token response missing access_token")
	}

	sp.token = out.AccessToken
	sp.tokenExpiry = time.Now().Add(time.Duration(out.ExpiresIn)*time.Second - 30*time.Second)
	return sp.token, nil
}
