package handlers

import (
	"net/http"
	"time"
)

type healthView struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Health reports liveness of the console process only; it does not call the backend.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	a.json(w, http.StatusOK, healthView{Status: "ok", Time: a.now().UTC().Format(time.RFC3339)})
}
