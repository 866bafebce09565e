package recommend

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"omnia/internal/lyrics"
	"omnia/internal/music/sources"

	"github.com/raitonoberu/ytmusic"
)

// VideoRelated finds follow-up candidates from the seed video itself.
type VideoRelated interface {
	Related(videoURL, title string) ([]sources.TrackInfo, error)
	AvailableParsers() []string
}

// Finder produces autoplay candidates. The seed video's own mix comes
// first; then Spotify's recommendations for the seed track; last,
// similar artists from TasteDive. Spotify and TasteDive names get
// resolved to concrete tracks through YouTube Music search.
type Finder struct {
	youtube VideoRelated
	taste   *TasteDive
	spotify *Spotify
}

func NewFinder(youtube VideoRelated, taste *TasteDive, spotify *Spotify) *Finder {
	return &Finder{youtube: youtube, taste: taste, spotify: spotify}
}

const (
	similarArtistLimit  = 10
	spotifyRelatedLimit = 5
)

func (f *Finder) Related(seedURL, seedTitle string) ([]sources.TrackInfo, error) {
	infos, err := f.youtube.Related(seedURL, seedTitle)
	if err == nil && len(infos) > 0 {
		return infos, nil
	}
	if err != nil {
		log.Printf("[Recommend] video related lookup for %q: %v", seedTitle, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if f.spotify.Configured() {
		out, err := f.fromSpotify(ctx, seedTitle)
		if err == nil {
			return out, nil
		}
		log.Printf("[Recommend] spotify lookup for %q: %v", seedTitle, err)
	}

	return f.fromTasteDive(ctx, seedTitle)
}

// fromSpotify asks Spotify for tracks similar to the seed title.
func (f *Finder) fromSpotify(ctx context.Context, seedTitle string) ([]sources.TrackInfo, error) {
	recs, err := f.spotify.RecommendTracks(ctx, lyrics.CleanTitle(seedTitle), spotifyRelatedLimit)
	if err != nil {
		return nil, err
	}

	var out []sources.TrackInfo
	for _, rec := range recs {
		info, err := f.searchTrack(rec.Query())
		if err != nil {
			log.Printf("[Recommend] track lookup for %q: %v", rec.Query(), err)
			continue
		}
		out = append(out, info)
	}
	if len(out) == 0 {
		return nil, errors.New("no spotify recommendations resolved")
	}
	return out, nil
}

// fromTasteDive resolves similar artists to their top tracks.
func (f *Finder) fromTasteDive(ctx context.Context, seedTitle string) ([]sources.TrackInfo, error) {
	if f.taste == nil || f.taste.APIKey == "" {
		return nil, errors.New("no related tracks found")
	}

	artist, _ := lyrics.ExtractMetadata(seedTitle, "")
	if artist == "" {
		return nil, errors.New("could not guess artist from title")
	}

	names, err := f.taste.SimilarArtists(ctx, artist, similarArtistLimit)
	if err != nil {
		return nil, err
	}

	var out []sources.TrackInfo
	for _, name := range names {
		info, err := f.searchTrack(name)
		if err != nil {
			log.Printf("[Recommend] track lookup for artist %q: %v", name, err)
			continue
		}
		out = append(out, info)
	}
	if len(out) == 0 {
		return nil, errors.New("no related tracks found")
	}
	return out, nil
}

// searchTrack resolves a free-text query to its top YouTube Music hit.
func (f *Finder) searchTrack(query string) (sources.TrackInfo, error) {
	result, err := ytmusic.TrackSearch(query).Next()
	if err != nil {
		return sources.TrackInfo{}, err
	}
	if len(result.Tracks) == 0 {
		return sources.TrackInfo{}, errors.New("no tracks found")
	}

	track := result.Tracks[0]
	uploaders := make([]string, 0, len(track.Artists))
	for _, a := range track.Artists {
		uploaders = append(uploaders, a.Name)
	}

	return sources.TrackInfo{
		URL:              "https://www.youtube.com/watch?v=" + track.VideoID,
		Title:            track.Title,
		Uploader:         strings.Join(uploaders, ", "),
		SourceName:       "youtube",
		AvailableParsers: f.youtube.AvailableParsers(),
	}, nil
}
