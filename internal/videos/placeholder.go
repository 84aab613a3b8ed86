package videos

import (
	"context"
	"fmt"
)

// PlaceholderTitlePrefix marks titles of offline placeholder records.
const PlaceholderTitlePrefix = "[offline placeholder]"

// PlaceholderProvider returns clearly marked stand-in metadata. It is selected explicitly when the
// service runs without YouTube credentials.
type PlaceholderProvider struct{}

// Lookup returns a placeholder record for the identifier without any network access.
func (PlaceholderProvider) Lookup(_ context.Context, videoID string) (Metadata, error) {
	if videoID == "" {
		return Metadata{}, ErrInvalidURL
	}
	return Metadata{
		VideoID:     videoID,
		Title:       fmt.Sprintf("%s YouTube video %s", PlaceholderTitlePrefix, videoID),
		Description: "Metadata unavailable: the service is running in offline mode without a YouTube API key.",
		Thumbnail:   fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID),
		Duration:    "N/A",
		Placeholder: true,
	}, nil
}
