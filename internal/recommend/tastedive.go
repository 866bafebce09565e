package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const tastediveDefaultURL = "https://tastedive.com"

// TasteDive suggests similar artists for a seed artist. Results mixing
// in non-music entries or compilation noise get filtered out.
type TasteDive struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewTasteDive(apiKey string) *TasteDive {
	return &TasteDive{
		BaseURL: tastediveDefaultURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// junkKeywords mark suggestions that are not actual artists.
var junkKeywords = []string{
	"greatest hits",
	"best of",
	"compilation",
	"various artists",
	"soundtrack",
	"karaoke",
	"tribute",
	"cover band",
	"playlist",
}

type suggestion struct {
	Name string
	Type string
}

// SimilarArtists queries the similar API for up to limit artist names.
func (td *TasteDive) SimilarArtists(ctx context.Context, artist string, limit int) ([]string, error) {
	if td.APIKey == "" {
		return nil, fmt.Errorf("tastedive API key not configured")
	}

	params := url.Values{}
	params.Set("q", "music:"+artist)
	params.Set("type", "music")
	params.Set("info", "0")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("k", td.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, td.BaseURL+"/api/similar?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := td.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tastedive status %d", resp.StatusCode)
	}

	suggestions, err := decodeSimilar(resp.Body)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Type != "" && !strings.EqualFold(s.Type, "music") {
			continue
		}
		if isJunk(s.Name) {
			continue
		}
		names = append(names, s.Name)
	}
	return names, nil
}

func isJunk(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range junkKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// decodeSimilar tolerates the API's inconsistent key casing, which has
// flipped between "Similar"/"Results" and lowercase over the years.
func decodeSimilar(r io.Reader) ([]suggestion, error) {
	var root map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}

	similarRaw, ok := caseGet(root, "similar")
	if !ok {
		return nil, fmt.Errorf("tastedive response missing similar block")
	}

	var similar map[string]json.RawMessage
	if err := json.Unmarshal(similarRaw, &similar); err != nil {
		return nil, err
	}

	resultsRaw, ok := caseGet(similar, "results")
	if !ok {
		return nil, nil
	}

	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(resultsRaw, &entries); err != nil {
		return nil, err
	}

	out := make([]suggestion, 0, len(entries))
	for _, e := range entries {
		var s suggestion
		if raw, ok := caseGet(e, "name"); ok {
			json.Unmarshal(raw, &s.Name)
		}
		if raw, ok := caseGet(e, "type"); ok {
			json.Unmarshal(raw, &s.Type)
		}
		if s.Name != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func caseGet(m map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}
