package handlers

import (
	"net/http"

	"github.com/preston-bernstein/scoreboard-service/internal/domain/prefs"
)

const (
	msgInvalidFavorite = "Favorites must include an id, label, and category."
	msgMissingID       = "Favorite id is required for deletion."
	msgSaveFailed      = "Unable to save favorite right now."
	msgRemoveFailed    = "Unable to remove favorite right now."
)

type favoritesResponse struct {
	Favorites []prefs.Favorite `json:"favorites"`
}

func readFavorites(r *http.Request) []prefs.Favorite {
	var list []prefs.Favorite
	if !readCookieJSON(r, favoritesCookie, &list) {
		return []prefs.Favorite{}
	}
	return prefs.FilterValid(list)
}

// Favorites returns the favorites stored in the visitor's cookie.
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: readFavorites(r)}, h.logger)
}

// AddFavorite stores a favorite; re-adding an existing id is a no-op.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var fav prefs.Favorite
	if err := decodeBody(w, r, &fav); err != nil {
		writeError(w, r, http.StatusBadRequest, msgSaveFailed, h.logger)
		return
	}

	updated, err := prefs.AddFavorite(readFavorites(r), fav)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, msgInvalidFavorite, h.logger)
		return
	}
	h.respondFavorites(w, r, updated)
}

// RemoveFavorite drops a favorite by id.
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, r, http.StatusBadRequest, msgRemoveFailed, h.logger)
		return
	}

	updated, err := prefs.RemoveFavorite(readFavorites(r), body.ID)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, msgMissingID, h.logger)
		return
	}
	h.respondFavorites(w, r, updated)
}

func (h *Handler) respondFavorites(w http.ResponseWriter, r *http.Request, list []prefs.Favorite) {
	if err := writeCookieJSON(w, favoritesCookie, list); err != nil {
		writeError(w, r, http.StatusInternalServerError, msgSaveFailed, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: list}, h.logger)
}
