// Package handlers contains the HTTP surface. Handlers translate between
// JSON and the gateway services; all business rules live below this layer.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"arnio/internal/auth"
	"arnio/internal/docstore"
	"arnio/internal/i18n"
	"arnio/internal/infra"
	"arnio/internal/middleware"
	"arnio/internal/recommend"
)

type App struct {
	Auth    *auth.Service
	Docs    *docstore.Service
	Rec     *recommend.Service
	SQL     infra.SQLExecutor
	Logger  zerolog.Logger
	Metrics http.Handler
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the envelope {error: {code, message}}. The message is resolved
// from the request locale; the code is stable and machine-readable.
func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	locale := middleware.LocaleFromContext(r.Context())
	a.json(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": i18n.Message(locale, code),
		},
	})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
