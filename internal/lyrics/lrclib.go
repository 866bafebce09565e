package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const lrclibDefaultURL = "https://lrclib.net"

// durationTolerance is how far a search hit's length may drift from the
// playing track before it is considered a different recording.
const durationTolerance = 5 * time.Second

// Lrclib looks up lyrics on the lrclib.net open database. No API key.
type Lrclib struct {
	BaseURL string
	Client  *http.Client
}

func NewLrclib() *Lrclib {
	return &Lrclib{
		BaseURL: lrclibDefaultURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *Lrclib) Name() string { return "lrclib" }

type lrclibRecord struct {
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	Duration     float64 `json:"duration"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
	Instrumental bool    `json:"instrumental"`
}

// Fetch tries the exact-match endpoint first, then falls back to a
// fuzzy search filtered by track duration.
func (l *Lrclib) Fetch(ctx context.Context, q Query) (string, error) {
	if rec, err := l.get(ctx, q); err == nil {
		if text := rec.text(); text != "" {
			return text, nil
		}
	}
	return l.search(ctx, q)
}

func (l *Lrclib) get(ctx context.Context, q Query) (*lrclibRecord, error) {
	params := url.Values{}
	params.Set("artist_name", q.Artist)
	params.Set("track_name", q.Title)
	if q.Duration > 0 {
		params.Set("duration", fmt.Sprintf("%d", int(q.Duration.Seconds())))
	}

	var rec lrclibRecord
	if err := l.getJSON(ctx, "/api/get?"+params.Encode(), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (l *Lrclib) search(ctx context.Context, q Query) (string, error) {
	params := url.Values{}
	params.Set("q", q.Artist+" "+q.Title)

	var records []lrclibRecord
	if err := l.getJSON(ctx, "/api/search?"+params.Encode(), &records); err != nil {
		return "", err
	}

	for _, rec := range records {
		if rec.Instrumental || rec.text() == "" {
			continue
		}
		if q.Duration > 0 {
			diff := time.Duration(rec.Duration)*time.Second - q.Duration
			if diff < 0 {
				diff = -diff
			}
			if diff > durationTolerance {
				continue
			}
		}
		return rec.text(), nil
	}
	return "", ErrNotFound
}

func (l *Lrclib) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := l.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lrclib status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (r *lrclibRecord) text() string {
	if r.PlainLyrics != "" {
		return r.PlainLyrics
	}
	return r.SyncedLyrics
}
