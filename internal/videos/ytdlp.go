package videos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner executes external commands and returns stdout bytes.
type CommandRunner func(ctx context.Context, binary string, args ...string) ([]byte, error)

// YTDLPProvider fetches metadata using the yt-dlp CLI tool. It needs no API key.
type YTDLPProvider struct {
	Binary  string
	Args    []string
	Run     CommandRunner
	Timeout time.Duration
}

// NewYTDLPProvider constructs a Provider that shells out to yt-dlp.
func NewYTDLPProvider(binary string, timeout time.Duration) *YTDLPProvider {
	if strings.TrimSpace(binary) == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YTDLPProvider{
		Binary:  binary,
		Args:    []string{"--dump-single-json", "--no-warnings", "--no-playlist", "--skip-download"},
		Run:     defaultCommandRunner,
		Timeout: timeout,
	}
}

type ytdlpPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Thumbnail    string   `json:"thumbnail"`
	Channel      string   `json:"channel"`
	Uploader     string   `json:"uploader"`
	UploadDate   string   `json:"upload_date"`
	Duration     float64  `json:"duration"`
	ViewCount    uint64   `json:"view_count"`
	LikeCount    uint64   `json:"like_count"`
	CommentCount uint64   `json:"comment_count"`
	Tags         []string `json:"tags"`
}

// Lookup executes yt-dlp against the canonical watch URL and parses the JSON response.
func (p *YTDLPProvider) Lookup(ctx context.Context, videoID string) (Metadata, error) {
	if p == nil {
		return Metadata{}, ErrProviderUnavailable
	}
	run := p.Run
	if run == nil {
		run = defaultCommandRunner
	}

	execCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	args := append([]string{}, p.Args...)
	args = append(args, WatchURL(videoID))

	out, err := run(execCtx, p.Binary, args...)
	if err != nil {
		if strings.Contains(err.Error(), "Video unavailable") {
			return Metadata{}, ErrVideoNotFound
		}
		return Metadata{}, fmt.Errorf("yt-dlp fetch: %w", err)
	}

	var payload ytdlpPayload
	if err := json.Unmarshal(out, &payload); err != nil {
		return Metadata{}, fmt.Errorf("parse yt-dlp response: %w", err)
	}

	if payload.Title == "" && payload.Description == "" && payload.Thumbnail == "" {
		return Metadata{}, errors.New("yt-dlp returned empty metadata")
	}

	meta := Metadata{
		VideoID:      videoID,
		Title:        payload.Title,
		Description:  payload.Description,
		Thumbnail:    payload.Thumbnail,
		ChannelTitle: payload.Channel,
		ViewCount:    payload.ViewCount,
		LikeCount:    payload.LikeCount,
		CommentCount: payload.CommentCount,
		Tags:         payload.Tags,
		Duration:     formatSeconds(int64(payload.Duration)),
	}
	if meta.ChannelTitle == "" {
		meta.ChannelTitle = payload.Uploader
	}
	if uploaded, err := time.Parse("20060102", payload.UploadDate); err == nil {
		meta.PublishedAt = uploaded.UTC()
	}

	return meta, nil
}

// defaultCommandRunner folds stderr into the returned error so callers can classify failures.
func defaultCommandRunner(ctx context.Context, binary string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}
