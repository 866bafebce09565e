package youtube

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	source "omnia/internal/music/sources"

	kkdai "github.com/kkdai/youtube/v2"
)

const SourceYouTube string = "youtube"

type YouTubeSource struct {
	resolver *Resolver
	client   *kkdai.Client
}

func New() *YouTubeSource {
	return &YouTubeSource{
		resolver: NewResolver(),
		client:   &kkdai.Client{},
	}
}

func (y *YouTubeSource) Match(input string) bool {
	return isYouTubeURL(input)
}

func (y *YouTubeSource) SourceName() string {
	return SourceYouTube
}

func (y *YouTubeSource) AvailableParsers() []string {
	return []string{"kkdai-link", "ytdlp-link", "ytdlp-pipe"}
}

func (y *YouTubeSource) Resolve(input string, selectedParser string) ([]source.TrackInfo, error) {
	parsers := y.AvailableParsers()

	if selectedParser == "" {
		selectedParser = parsers[0]
	}
	if !slices.Contains(parsers, selectedParser) {
		return nil, errors.New(SourceYouTube + " source does not support " + selectedParser + " parser")
	}

	input = strings.TrimSpace(input)

	// direct video URL
	if isYouTubeVideoURL(input) {
		info := y.probe(CleanVideoURL(input))
		info.AvailableParsers = MoveToFront(parsers, selectedParser)
		return []source.TrackInfo{info}, nil
	}

	if isURL(input) {
		return nil, errors.New("invalid YouTube URL format")
	}

	// by title
	results, err := y.resolver.Search(input, 1)
	if err != nil {
		return nil, fmt.Errorf("could not find YouTube video for query: %w", err)
	}

	hit := results[0]
	info := y.probe("https://www.youtube.com/watch?v=" + hit.VideoID)
	if info.Title == "" {
		info.Title = hit.Title
	}
	if info.Uploader == "" {
		info.Uploader = hit.Uploader
	}
	if info.Duration == 0 {
		info.Duration = hit.Duration
	}
	info.AvailableParsers = MoveToFront(parsers, selectedParser)
	return []source.TrackInfo{info}, nil
}

// probe extracts metadata and a direct audio URL with the pure-Go client.
// A probed track starts playback without a second extractor round trip;
// on failure the track still plays, the parser chain extracts at play time.
func (y *YouTubeSource) probe(videoURL string) source.TrackInfo {
	info := source.TrackInfo{
		URL:        videoURL,
		SourceName: SourceYouTube,
	}

	video, err := y.client.GetVideo(videoURL)
	if err != nil {
		log.Printf("[YouTube] Probe failed for %s: %v", videoURL, err)
		return info
	}

	info.Title = video.Title
	info.Uploader = video.Author
	info.Duration = video.Duration
	if len(video.Thumbnails) > 0 {
		info.Thumbnail = video.Thumbnails[len(video.Thumbnails)-1].URL
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return info
	}
	streamURL, err := y.client.GetStreamURL(video, &formats[0])
	if err != nil {
		log.Printf("[YouTube] Stream URL fetch failed for %s: %v", videoURL, err)
		return info
	}
	info.StreamURL = streamURL

	return info
}

// Related finds candidate tracks to autoplay after the given video.
// Strategy 1 is the video's YouTube mix (RD playlist); strategy 2 falls
// back to a title search.
func (y *YouTubeSource) Related(videoURL, title string) ([]source.TrackInfo, error) {
	var out []source.TrackInfo

	if id := ExtractVideoID(videoURL); id != "" {
		mixURL := fmt.Sprintf("%s/watch?v=%s&list=RD%s", y.resolver.BaseURL, id, id)
		urls, err := y.resolver.ExtractMixVideos(mixURL)
		if err != nil {
			log.Printf("[YouTube] Mix lookup failed for %s: %v", id, err)
		}
		for _, u := range urls {
			if ExtractVideoID(u) == id {
				continue // skip the seed video itself
			}
			out = append(out, source.TrackInfo{
				URL:              u,
				SourceName:       SourceYouTube,
				AvailableParsers: y.AvailableParsers(),
			})
		}
		if len(out) > 0 {
			return out, nil
		}
	}

	query := strings.TrimSpace(stripBrackets(title))
	if query == "" {
		query = videoURL
	}
	results, err := y.resolver.Search(query+" music", 5)
	if err != nil {
		return nil, err
	}

	seedID := ExtractVideoID(videoURL)
	for _, r := range results {
		if r.VideoID == seedID {
			continue
		}
		out = append(out, source.TrackInfo{
			URL:              "https://www.youtube.com/watch?v=" + r.VideoID,
			Title:            r.Title,
			Uploader:         r.Uploader,
			Duration:         r.Duration,
			SourceName:       SourceYouTube,
			AvailableParsers: y.AvailableParsers(),
		})
	}

	if len(out) == 0 {
		return nil, errors.New("no related tracks found")
	}
	return out, nil
}

// stripBrackets drops (...) and [...] groups, which hurt search relevance.
func stripBrackets(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
