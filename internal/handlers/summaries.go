package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vidsummary/backend/internal/auth"
	"github.com/vidsummary/backend/internal/logging"
	"github.com/vidsummary/backend/internal/models"
	"github.com/vidsummary/backend/internal/summarize"
	"github.com/vidsummary/backend/internal/videos"
)

// SummaryHandler serves the summarize and list endpoints. Both expect a principal on the context.
type SummaryHandler struct {
	Summaries  SummaryStore
	Summarizer Summarizer
}

// List handles GET /api/summaries, returning the caller's summaries newest first.
func (h SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authorization required")
		return
	}
	if h.Summaries == nil {
		logger.Error("summary store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "summary service unavailable")
		return
	}

	summaries, err := h.Summaries.ListByUser(ctx, principal.UserID)
	if err != nil {
		logger.Error("list summaries failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to fetch summaries")
		return
	}
	if summaries == nil {
		summaries = []models.Summary{}
	}

	respondJSON(ctx, w, http.StatusOK, summaries)
}

// Summarize handles POST /api/summarize.
func (h SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	principal, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authorization required")
		return
	}
	if h.Summarizer == nil {
		logger.Error("summarizer unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "summary service unavailable")
		return
	}

	var req summarizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.Warn("invalid summarize payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	videoURL := strings.TrimSpace(req.VideoURL)
	if videoURL == "" {
		videoURL = strings.TrimSpace(req.URL)
	}

	result, err := h.Summarizer.Summarize(ctx, principal.UserID, videoURL)
	if err != nil {
		status, msg := summarizeErrorStatus(err)
		if status >= http.StatusInternalServerError {
			logger.Error("summarize failed", "error", err)
		}
		respondError(ctx, w, status, msg)
		return
	}

	respondJSON(ctx, w, http.StatusOK, newSummarizeResponse(result))
}

func summarizeErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, summarize.ErrMissingURL):
		return http.StatusBadRequest, "URL is required"
	case errors.Is(err, videos.ErrInvalidURL):
		return http.StatusBadRequest, "invalid YouTube URL"
	case errors.Is(err, videos.ErrVideoNotFound):
		return http.StatusNotFound, "video not found"
	}

	var stepErr *summarize.StepError
	if errors.As(err, &stepErr) {
		switch stepErr.Step {
		case summarize.StepFetchMetadata:
			return http.StatusInternalServerError, "failed to fetch video details"
		case summarize.StepPersist:
			return http.StatusInternalServerError, "failed to save summary"
		}
	}
	return http.StatusInternalServerError, "failed to analyze video"
}

type summarizeRequest struct {
	VideoURL string `json:"videoUrl"`
	URL      string `json:"url"`
}

type summarizeResponse struct {
	ID           string    `json:"id"`
	VideoURL     string    `json:"videoUrl"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	KeyPoints    string    `json:"keyPoints"`
	Summary      string    `json:"summary"`
	AIAnalysis   string    `json:"aiAnalysis"`
	VideoPurpose string    `json:"videoPurpose"`
	Conclusions  string    `json:"conclusions"`
	CreatedAt    time.Time `json:"createdAt"`

	ChannelTitle   string     `json:"channelTitle,omitempty"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	ViewCount      uint64     `json:"viewCount"`
	LikeCount      uint64     `json:"likeCount"`
	CommentCount   uint64     `json:"commentCount"`
	Tags           []string   `json:"tags"`
	Category       string     `json:"category,omitempty"`
	EngagementRate string     `json:"engagementRate"`
	Sentiment      string     `json:"sentiment"`

	Placeholder        bool `json:"placeholder"`
	GenerationFallback bool `json:"generationFallback"`
}

func newSummarizeResponse(res summarize.Result) summarizeResponse {
	s, meta := res.Summary, res.Metadata
	resp := summarizeResponse{
		ID:                 s.ID,
		VideoURL:           s.VideoURL,
		Title:              s.VideoTitle,
		Description:        meta.Description,
		ThumbnailURL:       s.ThumbnailURL,
		KeyPoints:          s.KeyPoints,
		Summary:            s.Summary,
		AIAnalysis:         s.AIAnalysis,
		VideoPurpose:       s.VideoPurpose,
		Conclusions:        s.Conclusions,
		CreatedAt:          s.CreatedAt,
		ChannelTitle:       meta.ChannelTitle,
		Duration:           meta.Duration,
		ViewCount:          meta.ViewCount,
		LikeCount:          meta.LikeCount,
		CommentCount:       meta.CommentCount,
		Tags:               meta.Tags,
		Category:           meta.CategoryID,
		EngagementRate:     meta.EngagementRate(),
		Sentiment:          meta.Sentiment(),
		Placeholder:        res.Placeholder,
		GenerationFallback: res.GenerationFallback,
	}
	if !meta.PublishedAt.IsZero() {
		published := meta.PublishedAt
		resp.PublishedAt = &published
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}
