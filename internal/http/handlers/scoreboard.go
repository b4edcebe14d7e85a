package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/app/scoreboard"
	"github.com/preston-bernstein/scoreboard-service/internal/logging"
	"github.com/preston-bernstein/scoreboard-service/internal/providers"
)

const upstreamFailureMessage = "We couldn't reach the ESPN scoreboard feed right now."

// Scoreboard serves one league's normalized slate.
func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	if h.scoreboard == nil {
		writeError(w, r, http.StatusServiceUnavailable, "scoreboard unavailable", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	query := r.URL.Query()
	league := query.Get("league")

	payload, err := h.scoreboard.Scoreboard(r.Context(), league, query.Get("date"))
	if err != nil {
		var unknown *scoreboard.UnknownLeagueError
		switch {
		case errors.As(err, &unknown):
			writeError(w, r, http.StatusBadRequest, "Unsupported league: "+unknown.Value, h.logger)
		case errors.Is(err, providers.ErrInvalidDate):
			writeError(w, r, http.StatusBadRequest, "invalid date (expected YYYY-MM-DD or YYYYMMDD)", h.logger)
		case errors.Is(err, context.Canceled):
			logging.Debug(logger, "scoreboard request canceled", logging.FieldLeague, league)
		default:
			logging.Warn(logger, "scoreboard upstream failed", logging.FieldLeague, league, "error", err)
			w.Header().Set("Cache-Control", "no-store")
			writeErrorBody(w, r, http.StatusBadGateway, upstreamErrorBody(err), h.logger)
		}
		return
	}

	w.Header().Set("Cache-Control", cacheControl(payload.RefreshInterval))
	writeJSON(w, http.StatusOK, payload, h.logger)
}

func upstreamErrorBody(err error) errorBody {
	body := errorBody{Error: upstreamFailureMessage}
	if upstream, ok := providers.AsUpstreamError(err); ok && upstream.StatusCode > 0 {
		body.Status = upstream.StatusCode
		return body
	}
	body.Detail = err.Error()
	return body
}

func cacheControl(refresh int) string {
	return fmt.Sprintf("public, max-age=%d, s-maxage=%d, stale-while-revalidate=60", refresh, refresh)
}
