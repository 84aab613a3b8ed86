package videos

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Metadata captures the video details used to prompt the model and render a summary.
type Metadata struct {
	VideoID      string
	Title        string
	Description  string
	Thumbnail    string
	ChannelTitle string
	PublishedAt  time.Time
	Duration     string
	ViewCount    uint64
	LikeCount    uint64
	CommentCount uint64
	Tags         []string
	CategoryID   string
	// CommentsRead is the number of top-level comment threads read for the sentiment signal.
	CommentsRead int

	// Placeholder marks records produced in offline mode. They must never be presented as real data.
	Placeholder bool
}

// EngagementRate reports likes as a percentage of views, or "N/A" when there are no views.
func (m Metadata) EngagementRate() string {
	if m.ViewCount == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(m.LikeCount)/float64(m.ViewCount)*100)
}

// Sentiment is a coarse audience signal: "Positive" when any comment threads were read, otherwise
// "Neutral".
func (m Metadata) Sentiment() string {
	if m.CommentsRead > 0 {
		return "Positive"
	}
	return "Neutral"
}

// Provider returns metadata for a validated video identifier.
type Provider interface {
	Lookup(ctx context.Context, videoID string) (Metadata, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, videoID string) (Metadata, error)

// Lookup calls f.
func (f ProviderFunc) Lookup(ctx context.Context, videoID string) (Metadata, error) {
	return f(ctx, videoID)
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatISODuration renders an ISO-8601 duration such as PT1H2M3S as "1h 2m 3s". Values it
// cannot parse are returned unchanged.
func FormatISODuration(raw string) string {
	raw = strings.TrimSpace(raw)
	m := isoDurationPattern.FindStringSubmatch(raw)
	if m == nil || raw == "P" || raw == "PT" {
		return raw
	}

	part := func(s string) int64 {
		if s == "" {
			return 0
		}
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	}

	total := part(m[1])*86400 + part(m[2])*3600 + part(m[3])*60 + part(m[4])
	return formatSeconds(total)
}

func formatSeconds(total int64) string {
	if total <= 0 {
		return "0s"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}
