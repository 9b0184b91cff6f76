package api

import (
	"crypto/subtle"
	"net/http"

	"calendarbot/internal/config"
	"calendarbot/internal/utils"
)

// BasicAuth guards every event endpoint. If AUTH_PASS_HASH is
// configured the password is verified against the bcrypt hash,
// otherwise against AUTH_PASS in constant time.
func BasicAuth(cfg *config.APIConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !credentialsValid(cfg, username, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="calendarbot"`)
				writeError(w, Unauthorized("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func credentialsValid(cfg *config.APIConfig, username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(cfg.AuthUser)) == 1

	var passMatch bool
	if cfg.AuthPassHash != "" {
		passMatch = utils.CheckPassword(cfg.AuthPassHash, password)
	} else {
		passMatch = subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AuthPass)) == 1
	}

	return userMatch && passMatch
}
