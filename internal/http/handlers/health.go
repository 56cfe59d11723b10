package handlers

import (
	"net/http"

	"arnio/internal/sqlinline"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.SQL != nil {
		row := a.SQL.QueryRow(r.Context(), sqlinline.QHealthPing)
		var one int
		if err := row.Scan(&one); err != nil {
			a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
