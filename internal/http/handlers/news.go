package handlers

import (
	"net/http"
)

// News serves the merged headline feed. A cache hit is reported in X-Cache.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		writeError(w, r, http.StatusServiceUnavailable, "news unavailable", h.logger)
		return
	}

	payload, hit, err := h.news.Headlines(r.Context())
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "news unavailable", h.logger)
		return
	}

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}
