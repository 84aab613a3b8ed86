package videos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestYouTubeProvider(t *testing.T, handler http.HandlerFunc) *YouTubeProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewYouTubeProvider(context.Background(), "test-key", time.Second,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return provider
}

func TestYouTubeProviderLookup(t *testing.T) {
	provider := newTestYouTubeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/youtube/v3/commentThreads" {
			assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("videoId"))
			assert.Equal(t, "100", r.URL.Query().Get("maxResults"))
			assert.Equal(t, []string{"snippet"}, r.URL.Query()["part"])
			_, _ = w.Write([]byte(`{"items":[{"id":"c1"},{"id":"c2"}]}`))
			return
		}

		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("id"))
		assert.Equal(t, []string{"snippet", "statistics", "contentDetails"}, r.URL.Query()["part"])

		_, _ = w.Write([]byte(`{"items":[{
			"id":"dQw4w9WgXcQ",
			"snippet":{
				"title":"Never Gonna Give You Up",
				"description":"Official video",
				"channelTitle":"Rick Astley",
				"publishedAt":"2009-10-25T06:57:33Z",
				"tags":["rick","80s"],
				"categoryId":"10",
				"thumbnails":{
					"default":{"url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
					"high":{"url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}
				}
			},
			"statistics":{"viewCount":"1000","likeCount":"50","commentCount":"7"},
			"contentDetails":{"duration":"PT3M33S"}
		}]}`))
	})

	meta, err := provider.Lookup(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "Never Gonna Give You Up", meta.Title)
	assert.Equal(t, "Official video", meta.Description)
	assert.Equal(t, "Rick Astley", meta.ChannelTitle)
	assert.Equal(t, "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg", meta.Thumbnail)
	assert.Equal(t, "3m 33s", meta.Duration)
	assert.Equal(t, uint64(1000), meta.ViewCount)
	assert.Equal(t, uint64(50), meta.LikeCount)
	assert.Equal(t, uint64(7), meta.CommentCount)
	assert.Equal(t, []string{"rick", "80s"}, meta.Tags)
	assert.Equal(t, "10", meta.CategoryID)
	assert.Equal(t, time.Date(2009, 10, 25, 6, 57, 33, 0, time.UTC), meta.PublishedAt)
	assert.Equal(t, 2, meta.CommentsRead)
	assert.Equal(t, "Positive", meta.Sentiment())
	assert.False(t, meta.Placeholder)
}

func TestYouTubeProviderLookupCommentsDisabled(t *testing.T) {
	provider := newTestYouTubeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/youtube/v3/commentThreads" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"comments disabled"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","snippet":{"title":"Quiet"}}]}`))
	})

	meta, err := provider.Lookup(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Quiet", meta.Title)
	assert.Equal(t, 0, meta.CommentsRead)
	assert.Equal(t, "Neutral", meta.Sentiment())
}

func TestYouTubeProviderLookupNoItems(t *testing.T) {
	provider := newTestYouTubeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := provider.Lookup(context.Background(), "aaaaaaaaaaa")
	require.ErrorIs(t, err, ErrVideoNotFound)
}

func TestYouTubeProviderLookupUpstreamError(t *testing.T) {
	provider := newTestYouTubeProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota exceeded"}}`))
	})

	_, err := provider.Lookup(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVideoNotFound)
}

func TestNewYouTubeProviderRequiresKey(t *testing.T) {
	_, err := NewYouTubeProvider(context.Background(), " ", time.Second)
	require.ErrorIs(t, err, ErrProviderUnavailable)
}
