package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, handlers *trivia.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthzHandler(logger, pool))

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("GET /categories", instrument("categories_list", handlers.Categories))
	mux.Handle("GET /categories/{id}/questions", instrument("category_questions", handlers.CategoryQuestions))
	mux.Handle("GET /questions", instrument("questions_list", handlers.Questions))
	mux.Handle("POST /questions", instrument("questions_post", handlers.CreateOrSearchQuestions))
	mux.Handle("DELETE /questions/{id}", instrument("question_delete", handlers.DeleteQuestion))
	mux.Handle("POST /quizzes", instrument("quiz_next", handlers.Quizzes))

	handler := corsMiddleware(cfg.CORS,
		recoverMiddleware(logger,
			requestLogger(logger, mux)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}

// healthzHandler reports liveness, degrading when the database is unreachable.
func healthzHandler(logger zerolog.Logger, pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pool.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("database ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
