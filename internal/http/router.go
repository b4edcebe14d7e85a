package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/scoreboard-service/internal/http/handlers"
	"github.com/preston-bernstein/scoreboard-service/internal/http/middleware"
	"github.com/preston-bernstein/scoreboard-service/internal/metrics"
)

// RouterOptions carries the cross-cutting pieces mounted ahead of handlers.
type RouterOptions struct {
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(handler *handlers.Handler, opts RouterOptions) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(opts.Logger, opts.Metrics))
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Get("/scoreboard", handler.Scoreboard)
		r.Get("/news", handler.News)
		r.Get("/leagues", handler.Leagues)

		r.Get("/favorites", handler.Favorites)
		r.Post("/favorites", handler.AddFavorite)
		r.Delete("/favorites", handler.RemoveFavorite)

		r.Get("/notifications", handler.Notifications)
		r.Put("/notifications", handler.UpdateNotifications)
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-Cache"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}
