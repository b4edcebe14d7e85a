package handlers

import (
	"log/slog"
	"net/http"

	appnews "github.com/preston-bernstein/scoreboard-service/internal/app/news"
	"github.com/preston-bernstein/scoreboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/scoreboard-service/internal/leagues"
)

// maxBodyBytes bounds JSON request bodies on the preference endpoints.
const maxBodyBytes = 16 << 10

// Handler wires HTTP routes to the application services.
type Handler struct {
	scoreboard *scoreboard.Service
	news       *appnews.Service
	leagues    *leagues.Registry
	logger     *slog.Logger
	readyFn    func() error
}

// Deps lists what a Handler serves from. Nil services answer 503.
type Deps struct {
	Scoreboard *scoreboard.Service
	News       *appnews.Service
	Leagues    *leagues.Registry
	Logger     *slog.Logger
	// ReadyFn reports a reason the process should not take traffic.
	ReadyFn func() error
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	if deps.Leagues == nil {
		deps.Leagues = leagues.Builtin()
	}
	return &Handler{
		scoreboard: deps.Scoreboard,
		news:       deps.News,
		leagues:    deps.Leagues,
		logger:     deps.Logger,
		readyFn:    deps.ReadyFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.scoreboard == nil {
		writeError(w, r, http.StatusServiceUnavailable, "scoreboard service not configured", h.logger)
		return
	}
	if h.readyFn != nil {
		if err := h.readyFn(); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err.Error(), h.logger)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

type leaguesResponse struct {
	Default string           `json:"default"`
	Leagues []leagues.League `json:"leagues"`
}

// Leagues lists the supported leagues.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, leaguesResponse{
		Default: h.leagues.Default().Key,
		Leagues: h.leagues.All(),
	}, h.logger)
}
