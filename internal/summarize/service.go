package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidsummary/backend/internal/llm"
	"github.com/vidsummary/backend/internal/logging"
	"github.com/vidsummary/backend/internal/models"
	"github.com/vidsummary/backend/internal/videos"
)

// ErrMissingURL indicates the request carried no video URL.
var ErrMissingURL = errors.New("video URL is required")

// ErrMissingUser indicates the run was started without an authenticated owner.
var ErrMissingUser = errors.New("user id is required")

// Pipeline steps, as reported by StepError and span names.
const (
	StepValidate      = "validate"
	StepExtractID     = "extract_id"
	StepFetchMetadata = "fetch_metadata"
	StepBuildPrompt   = "build_prompt"
	StepGenerate      = "generate"
	StepParse         = "parse"
	StepPersist       = "persist"
	StepArchive       = "archive"
)

// StepError records which pipeline step stopped a run.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("summarize %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// SummaryWriter persists a finished summary.
type SummaryWriter interface {
	Create(ctx context.Context, summary models.Summary) error
}

// Archiver keeps the raw generated text of a run.
type Archiver interface {
	Archive(ctx context.Context, userID, summaryID, raw string) error
}

// Result is the outcome of one successful run.
type Result struct {
	Summary  models.Summary
	Metadata videos.Metadata

	// Placeholder is set when the metadata came from the offline provider.
	Placeholder bool
	// GenerationFallback is set when text generation failed and fallback texts were stored.
	GenerationFallback bool
}

// Service runs the summarize pipeline: extract the video id, fetch metadata, prompt the model once,
// parse the sections and store exactly one row.
type Service struct {
	metadata  videos.Provider
	generator llm.Generator
	summaries SummaryWriter
	archive   Archiver
	now       func() time.Time
	newID     func() string
}

// Option customises a Service.
type Option func(*Service)

// WithArchive enables best-effort archiving of the raw model output.
func WithArchive(a Archiver) Option {
	return func(s *Service) { s.archive = a }
}

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides summary id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the pipeline collaborators.
func NewService(metadata videos.Provider, generator llm.Generator, summaries SummaryWriter, opts ...Option) *Service {
	s := &Service{
		metadata:  metadata,
		generator: generator,
		summaries: summaries,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize runs the pipeline for one user and URL. Failures before persistence write nothing.
func (s *Service) Summarize(ctx context.Context, userID, videoURL string) (Result, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return Result{}, &StepError{Step: StepValidate, Err: ErrMissingURL}
	}
	if strings.TrimSpace(userID) == "" {
		return Result{}, &StepError{Step: StepValidate, Err: ErrMissingUser}
	}

	videoID, err := videos.ExtractID(videoURL)
	if err != nil {
		return Result{}, &StepError{Step: StepExtractID, Err: err}
	}

	ctx = logging.With(ctx, slog.String("user_id", userID), slog.String("video_id", videoID))

	meta, err := s.fetchMetadata(ctx, videoID)
	if err != nil {
		return Result{}, &StepError{Step: StepFetchMetadata, Err: err}
	}

	prompt, err := BuildPrompt(meta)
	if err != nil {
		return Result{}, &StepError{Step: StepBuildPrompt, Err: err}
	}

	raw, genErr := s.generate(ctx, prompt)

	var sections Sections
	if genErr != nil {
		sections = FallbackSections()
	} else {
		sections = s.parse(ctx, raw)
	}

	summary := models.Summary{
		ID:           s.newID(),
		UserID:       userID,
		VideoURL:     videoURL,
		VideoTitle:   meta.Title,
		ThumbnailURL: meta.Thumbnail,
		KeyPoints:    sections.KeyPoints,
		Summary:      sections.Summary,
		AIAnalysis:   sections.AIAnalysis,
		VideoPurpose: sections.VideoPurpose,
		Conclusions:  sections.Conclusions,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.persist(ctx, summary); err != nil {
		return Result{}, &StepError{Step: StepPersist, Err: err}
	}

	if genErr == nil {
		s.archiveRaw(ctx, summary, raw)
	}

	return Result{
		Summary:            summary,
		Metadata:           meta,
		Placeholder:        meta.Placeholder,
		GenerationFallback: genErr != nil,
	}, nil
}

func (s *Service) fetchMetadata(ctx context.Context, videoID string) (videos.Metadata, error) {
	ctx, span := logging.StartSpan(ctx, StepFetchMetadata)
	defer span.End()

	if s.metadata == nil {
		span.RecordError(videos.ErrProviderUnavailable)
		return videos.Metadata{}, videos.ErrProviderUnavailable
	}

	meta, err := s.metadata.Lookup(ctx, videoID)
	if err != nil {
		span.RecordError(err)
		return videos.Metadata{}, err
	}
	if meta.VideoID == "" {
		meta.VideoID = videoID
	}
	span.SetAttributes(slog.Bool("placeholder", meta.Placeholder))
	return meta, nil
}

// generate makes the single model call. Its error never fails the run.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := logging.StartSpan(ctx, StepGenerate)
	defer span.End()

	if s.generator == nil {
		span.RecordError(llm.ErrEmptyResponse)
		return "", llm.ErrEmptyResponse
	}

	raw, err := s.generator.Generate(ctx, prompt)
	if err == nil && strings.TrimSpace(raw) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		span.RecordError(err)
		logging.FromContext(ctx).Warn("text generation failed, storing fallback sections", "error", err)
		return "", err
	}
	span.SetAttributes(slog.Int("response_bytes", len(raw)))
	return raw, nil
}

func (s *Service) parse(ctx context.Context, raw string) Sections {
	_, span := logging.StartSpan(ctx, StepParse)
	defer span.End()

	sections := ParseSections(raw)
	if missing := sections.Missing(); len(missing) > 0 {
		span.SetAttributes(slog.Any("missing_sections", missing))
	}
	return sections
}

func (s *Service) persist(ctx context.Context, summary models.Summary) error {
	ctx, span := logging.StartSpan(ctx, StepPersist)
	defer span.End()

	if err := s.summaries.Create(ctx, summary); err != nil {
		span.RecordError(err)
		return err
	}
	span.SetAttributes(slog.String("summary_id", summary.ID))
	return nil
}

func (s *Service) archiveRaw(ctx context.Context, summary models.Summary, raw string) {
	if s.archive == nil {
		return
	}
	ctx, span := logging.StartSpan(ctx, StepArchive)
	defer span.End()

	if err := s.archive.Archive(ctx, summary.UserID, summary.ID, raw); err != nil {
		span.RecordError(err)
	}
}
