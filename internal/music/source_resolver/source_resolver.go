package source_resolver

import (
	"errors"
	"strings"

	"omnia/internal/music/sources"
	"omnia/internal/music/sources/youtube"
)

type SourceResolver struct {
	Sources map[string]sources.Source
}

func New() *SourceResolver {
	youtubeSource := youtube.New()

	return &SourceResolver{
		Sources: map[string]sources.Source{
			youtubeSource.SourceName(): youtubeSource,
		},
	}
}

func (r *SourceResolver) Resolve(input, selectedSource, selectedParser string) ([]sources.TrackInfo, error) {
	// Direct source selection
	if selectedSource != "" && selectedSource != sources.SourceAuto {
		src, ok := r.Sources[selectedSource]
		if !ok {
			return nil, errors.New("unknown source: " + selectedSource)
		}
		if isURL(input) && !src.Match(input) {
			return nil, errors.New("input does not match selected source: " + selectedSource)
		}
		return src.Resolve(input, selectedParser)
	}

	// Automatic detection: bare text is a YouTube title search
	if !isURL(input) {
		yt, ok := r.Sources[sources.SourceYouTube]
		if !ok {
			return nil, errors.New(sources.SourceYouTube + " source not available for title search")
		}
		return yt.Resolve(input, selectedParser)
	}

	for _, s := range r.Sources {
		if s.Match(input) {
			return s.Resolve(input, selectedParser)
		}
	}

	return nil, errors.New("no matching source found")
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
