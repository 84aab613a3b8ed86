package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vidsummary/backend/internal/middleware"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users      UserStore
	Tokens     TokenService
	Summaries  SummaryStore
	Summarizer Summarizer
	Health     HealthHandler
}

// NewRouter wires the HTTP surface. Summary routes require a bearer token.
func NewRouter(deps Dependencies, logger *slog.Logger, allowedOrigins []string) http.Handler {
	authHandler := AuthHandler{Users: deps.Users, Tokens: deps.Tokens}
	summaries := SummaryHandler{Summaries: deps.Summaries, Summarizer: deps.Summarizer}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", deps.Health.Handle)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", authHandler.SignUp)
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireBearer(deps.Tokens))
			r.Get("/summaries", summaries.List)
			r.Post("/summarize", summaries.Summarize)
		})
	})

	return r
}
