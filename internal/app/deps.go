package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/vidsummary/backend/internal/archive"
	"github.com/vidsummary/backend/internal/auth"
	"github.com/vidsummary/backend/internal/config"
	"github.com/vidsummary/backend/internal/db"
	"github.com/vidsummary/backend/internal/handlers"
	"github.com/vidsummary/backend/internal/llm"
	"github.com/vidsummary/backend/internal/repositories"
	"github.com/vidsummary/backend/internal/summarize"
	"github.com/vidsummary/backend/internal/videos"
)

// stores bundles the repositories for the configured database backend.
type stores struct {
	users     repositories.UserRepository
	summaries repositories.SummaryRepository
	sqlDB     *sql.DB
	dialect   db.Dialect
	ping      handlers.HealthCheck
	close     func()
}

// openStores connects to Postgres, or to SQLite when the URL uses the sqlite:// scheme.
func openStores(ctx context.Context, databaseURL string) (stores, error) {
	if db.IsSQLite(databaseURL) {
		handle, err := db.OpenSQLite(ctx, databaseURL)
		if err != nil {
			return stores{}, err
		}
		return stores{
			users:     repositories.NewSQLiteUserRepository(handle),
			summaries: repositories.NewSQLiteSummaryRepository(handle),
			sqlDB:     handle,
			dialect:   db.DialectSQLite,
			ping:      handle.PingContext,
			close:     func() { _ = handle.Close() },
		}, nil
	}

	pool, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return stores{}, err
	}
	return stores{
		users:     repositories.NewPostgresUserRepository(pool),
		summaries: repositories.NewPostgresSummaryRepository(pool),
		sqlDB:     stdlib.OpenDBFromPool(pool),
		dialect:   db.DialectPostgres,
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}

// buildMetadataProvider picks the metadata source from the offline flag and configured source.
func buildMetadataProvider(ctx context.Context, cfg config.Config) (videos.Provider, error) {
	if cfg.VideoOffline {
		return videos.PlaceholderProvider{}, nil
	}
	if cfg.MetadataSource == config.SourceYTDLP {
		return videos.NewYTDLPProvider(cfg.YTDLPPath, cfg.UpstreamTimeout), nil
	}
	provider, err := videos.NewYouTubeProvider(ctx, cfg.YouTubeAPIKey, cfg.UpstreamTimeout)
	if err != nil {
		return nil, fmt.Errorf("configure youtube provider: %w", err)
	}
	return provider, nil
}

// buildGenerator picks the text-generation backend from the offline flag and configured provider.
func buildGenerator(ctx context.Context, cfg config.Config) (llm.Generator, error) {
	if cfg.GenerationOffline {
		return llm.PlaceholderGenerator{}, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := llm.NewOpenAIClient(llm.OpenAIOptions{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel, Timeout: cfg.UpstreamTimeout})
		if err != nil {
			return nil, fmt.Errorf("configure openai client: %w", err)
		}
		return client, nil
	default:
		client, err := llm.NewGeminiClient(ctx, llm.GeminiOptions{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel, Timeout: cfg.UpstreamTimeout})
		if err != nil {
			return nil, fmt.Errorf("configure gemini client: %w", err)
		}
		return client, nil
	}
}

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, st stores, cfg config.Config) (handlers.Dependencies, error) {
	metadata, err := buildMetadataProvider(ctx, cfg)
	if err != nil {
		return handlers.Dependencies{}, err
	}
	generator, err := buildGenerator(ctx, cfg)
	if err != nil {
		return handlers.Dependencies{}, err
	}

	var opts []summarize.Option
	if cfg.Archive.Enabled() {
		raw, err := archive.NewS3Archive(ctx, cfg.Archive)
		if err != nil {
			return handlers.Dependencies{}, fmt.Errorf("configure archive: %w", err)
		}
		opts = append(opts, summarize.WithArchive(raw))
	}

	return handlers.Dependencies{
		Users:      st.users,
		Tokens:     auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Summaries:  st.summaries,
		Summarizer: summarize.NewService(metadata, generator, st.summaries, opts...),
		Health: handlers.HealthHandler{
			Database:          st.ping,
			VideoOffline:      cfg.VideoOffline,
			GenerationOffline: cfg.GenerationOffline,
		},
	}, nil
}

// logModes reports which collaborators are live so placeholder output is never mistaken for real data.
func logModes(logger *slog.Logger, cfg config.Config) {
	if cfg.UsingDevSecret {
		logger.Warn("JWT_SECRET not set, using development signing secret")
	}
	if cfg.VideoOffline {
		logger.Warn("video metadata offline, serving placeholder records", "forced", cfg.ForceOffline)
	} else {
		logger.Info("video metadata online", "source", cfg.MetadataSource)
	}
	if cfg.GenerationOffline {
		logger.Warn("text generation offline, serving placeholder summaries", "forced", cfg.ForceOffline)
	} else {
		logger.Info("text generation online", "provider", cfg.LLMProvider)
	}
	if cfg.Archive.Enabled() {
		logger.Info("raw response archive enabled", "bucket", cfg.Archive.Bucket)
	}
}
