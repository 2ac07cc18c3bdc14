package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/binss1/stock-dividend-tracker/internal/services"
)

type RefreshHandler struct {
	refresh *services.RefreshService
}

func NewRefreshHandler(refresh *services.RefreshService) *RefreshHandler {
	return &RefreshHandler{refresh: refresh}
}

// POST /api/refresh
// Runs one synchronous refresh cycle and returns its result. Concurrent
// requests queue behind the run in progress.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.refresh.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}
