package youtube

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

var (
	youtubeHostPattern = regexp.MustCompile(`(?i)^(www\.|m\.|music\.)?(youtube\.com|youtu\.be)$`)
	videoIDPattern     = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/)([a-zA-Z0-9_-]{11})`)
)

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func isYouTubeURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return youtubeHostPattern.MatchString(u.Host)
}

func isYouTubeVideoURL(input string) bool {
	return isYouTubeURL(input) && videoIDPattern.MatchString(input)
}

// ExtractVideoID pulls the 11-char video ID out of any YouTube URL form.
func ExtractVideoID(input string) string {
	m := videoIDPattern.FindStringSubmatch(input)
	if len(m) > 1 {
		return m[1]
	}
	return ""
}

// CleanVideoURL strips playlist/time parameters down to a canonical watch URL.
func CleanVideoURL(input string) string {
	id := ExtractVideoID(input)
	if id == "" {
		return input
	}
	return "https://www.youtube.com/watch?v=" + id
}

// MoveToFront returns a copy of list with item first, order otherwise kept.
func MoveToFront(list []string, item string) []string {
	out := make([]string, 0, len(list))
	if slices.Contains(list, item) {
		out = append(out, item)
	}
	for _, v := range list {
		if v != item {
			out = append(out, v)
		}
	}
	return out
}
