package videos

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// urlShapePattern captures the candidate identifier following one of the known URL shapes.
	urlShapePattern = regexp.MustCompile(`(?:(?i:youtu\.be)/|/v/|/u/\w/|/embed/|/shorts/|/live/|watch\?v=|[?&]v=)([^#&?/]*)`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// reservedSegments look like identifiers but name playlists or other pages.
var reservedSegments = map[string]struct{}{
	"videoseries": {},
}

var youtubeHosts = map[string]struct{}{
	"youtube.com":          {},
	"youtu.be":             {},
	"youtube-nocookie.com": {},
}

// ExtractID returns the 11-character video identifier from a YouTube URL. Anything that is not a
// recognised YouTube URL, whose identifier is not exactly 11 characters, or that names two different
// identifiers yields ErrInvalidURL.
func ExtractID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}

	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	parsed, err := url.Parse(candidate)
	if err != nil || !isYouTubeHost(parsed.Hostname()) {
		return "", ErrInvalidURL
	}

	var id string
	for _, match := range urlShapePattern.FindAllStringSubmatch(candidate, -1) {
		if _, reserved := reservedSegments[match[1]]; reserved {
			return "", ErrInvalidURL
		}
		if !videoIDPattern.MatchString(match[1]) {
			continue
		}
		if id != "" && id != match[1] {
			return "", ErrInvalidURL
		}
		id = match[1]
	}
	if id == "" {
		return "", ErrInvalidURL
	}
	return id, nil
}

// WatchURL returns the canonical watch page for a video identifier.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, prefix := range []string{"www.", "m.", "music."} {
		host = strings.TrimPrefix(host, prefix)
	}
	_, ok := youtubeHosts[host]
	return ok
}
