package lyrics

import (
	"regexp"
	"strings"
)

// Video titles carry decorations that break lyrics lookups, so they get
// stripped before querying any provider.
var (
	bracketedPattern  = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]`)
	featuringPattern  = regexp.MustCompile(`(?i)\s*(?:ft\.?|feat\.?|featuring)\s+.*$`)
	decorationPattern = regexp.MustCompile(`(?i)\s*(?:official\s+(?:music\s+)?video|official\s+audio|lyric\s+video|lyrics|visualizer|audio|live|remastered(?:\s+\d{4})?|[48]k|hd|hq)\s*$`)
	separatorPattern  = regexp.MustCompile(`\s*[|/]\s*.*$`)
	spacePattern      = regexp.MustCompile(`\s{2,}`)
)

// CleanTitle strips bracketed blurbs, featured artists and channel
// decorations from a video title.
func CleanTitle(title string) string {
	s := bracketedPattern.ReplaceAllString(title, "")
	s = separatorPattern.ReplaceAllString(s, "")
	s = featuringPattern.ReplaceAllString(s, "")
	s = decorationPattern.ReplaceAllString(s, "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "-–"))
}

// ExtractMetadata guesses artist and song from a video title, falling
// back to the uploader as artist. YouTube auto-channels end in " - Topic".
func ExtractMetadata(title, uploader string) (artist, song string) {
	clean := CleanTitle(title)
	if i := strings.Index(clean, " - "); i > 0 {
		return strings.TrimSpace(clean[:i]), strings.TrimSpace(clean[i+3:])
	}
	artist = strings.TrimSuffix(strings.TrimSpace(uploader), " - Topic")
	artist = strings.TrimSpace(artist)
	return artist, clean
}

// SplitLyrics cuts text into chunks of at most limit runes, breaking at
// line boundaries so verses stay intact. A single oversized line is cut
// hard as a last resort.
func SplitLyrics(text string, limit int) []string {
	if limit <= 0 || len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			chunks = appendChunk(chunks, &current, &currentLen)
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		lineLen := len(runes)

		sep := 0
		if currentLen > 0 {
			sep = 1
		}
		if currentLen+sep+lineLen > limit {
			chunks = appendChunk(chunks, &current, &currentLen)
			sep = 0
		}
		if sep == 1 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(string(runes))
		currentLen += lineLen
	}
	chunks = appendChunk(chunks, &current, &currentLen)
	return chunks
}

func appendChunk(chunks []string, current *strings.Builder, currentLen *int) []string {
	if *currentLen == 0 {
		return chunks
	}
	chunks = append(chunks, current.String())
	current.Reset()
	*currentLen = 0
	return chunks
}
