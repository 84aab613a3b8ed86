package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Span represents one step of a request, logged with its duration and outcome when it ends.
type Span struct {
	name   string
	logger *slog.Logger
	start  time.Time
	attrs  []any
	err    error
}

// StartSpan derives a child span from the provided context, enriching the logger
// with tracing metadata. It returns the derived context and the span handle.
func StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := FromContext(ctx)

	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
		ctx = WithTraceID(ctx, traceID)
		logger = logger.With(slog.String("trace_id", traceID))
	}

	parentSpanID := SpanIDFromContext(ctx)
	spanID := uuid.NewString()

	logger = logger.With(
		slog.String("span_id", spanID),
		slog.String("span_name", name),
	)
	if parentSpanID != "" {
		logger = logger.With(slog.String("parent_span_id", parentSpanID))
	}

	ctx = WithLogger(ctx, logger)
	ctx = WithSpanID(ctx, spanID)

	return ctx, &Span{name: name, logger: logger, start: time.Now()}
}

// SetAttributes adds attributes to the completion entry.
func (s *Span) SetAttributes(attrs ...slog.Attr) {
	if s == nil {
		return
	}
	for _, attr := range attrs {
		s.attrs = append(s.attrs, attr)
	}
}

// RecordError marks the span as failed. The last recorded error wins.
func (s *Span) RecordError(err error) {
	if s == nil || err == nil {
		return
	}
	s.err = err
}

// End emits the completion entry: info for success, warn when an error was recorded.
func (s *Span) End() {
	if s == nil {
		return
	}
	args := append([]any{slog.Duration("duration", time.Since(s.start))}, s.attrs...)
	if s.err != nil {
		s.logger.Warn("span failed", append(args, slog.Any("error", s.err))...)
		return
	}
	s.logger.Info("span completed", args...)
}
