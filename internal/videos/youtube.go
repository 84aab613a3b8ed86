package videos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var videoParts = []string{"snippet", "statistics", "contentDetails"}

const maxCommentThreads = 100

// YouTubeProvider fetches metadata from the YouTube Data API v3.
type YouTubeProvider struct {
	service *youtube.Service
	timeout time.Duration
}

// NewYouTubeProvider constructs a provider authenticated with an API key. Extra client options
// (endpoint, HTTP client) are appended after the key.
func NewYouTubeProvider(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*YouTubeProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("youtube provider: %w", ErrProviderUnavailable)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	service, err := youtube.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}
	return &YouTubeProvider{service: service, timeout: timeout}, nil
}

// Lookup lists the video by identifier. An empty result is reported as ErrVideoNotFound.
func (p *YouTubeProvider) Lookup(ctx context.Context, videoID string) (Metadata, error) {
	if p == nil || p.service == nil {
		return Metadata{}, ErrProviderUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.service.Videos.List(videoParts).Id(videoID).Context(callCtx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return Metadata{}, ErrVideoNotFound
		}
		return Metadata{}, fmt.Errorf("youtube videos.list %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return Metadata{}, ErrVideoNotFound
	}

	meta := metadataFromVideo(videoID, resp.Items[0])
	meta.CommentsRead = p.sampleComments(callCtx, videoID)
	return meta, nil
}

// sampleComments counts up to maxCommentThreads top-level threads. Videos with comments disabled
// answer 403, so any failure counts as an empty sample.
func (p *YouTubeProvider) sampleComments(ctx context.Context, videoID string) int {
	resp, err := p.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(maxCommentThreads).
		Context(ctx).
		Do()
	if err != nil {
		return 0
	}
	return len(resp.Items)
}

func metadataFromVideo(videoID string, video *youtube.Video) Metadata {
	meta := Metadata{VideoID: videoID}

	if s := video.Snippet; s != nil {
		meta.Title = s.Title
		meta.Description = s.Description
		meta.ChannelTitle = s.ChannelTitle
		meta.Tags = s.Tags
		meta.CategoryID = s.CategoryId
		meta.Thumbnail = bestThumbnail(s.Thumbnails)
		if published, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			meta.PublishedAt = published.UTC()
		}
	}
	if st := video.Statistics; st != nil {
		meta.ViewCount = st.ViewCount
		meta.LikeCount = st.LikeCount
		meta.CommentCount = st.CommentCount
	}
	if cd := video.ContentDetails; cd != nil {
		meta.Duration = FormatISODuration(cd.Duration)
	}

	return meta
}

func bestThumbnail(details *youtube.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, thumb := range []*youtube.Thumbnail{details.Maxres, details.Standard, details.High, details.Medium, details.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
