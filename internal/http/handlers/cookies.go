package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

const (
	favoritesCookie     = "rtg-favorites"
	notificationsCookie = "rtg-notification-preferences"
	cookieMaxAge        = 30 * 24 * time.Hour
)

// readCookieJSON decodes a JSON cookie into dest. Values are stored
// query-escaped; unescaped values from other writers are accepted too.
func readCookieJSON(r *http.Request, name string, dest any) bool {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return false
	}
	raw := c.Value
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		raw = unescaped
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func writeCookieJSON(w http.ResponseWriter, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		MaxAge:   int(cookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false,
	})
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dest)
}
