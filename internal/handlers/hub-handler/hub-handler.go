package hub_handler

import (
	"encoding/json"
	"net/http"
	"time"

	app_error "github.com/xenn00/livestream-service/internal/errors"
	"github.com/xenn00/livestream-service/internal/handlers"
	"github.com/xenn00/livestream-service/internal/middleware"
	"github.com/xenn00/livestream-service/internal/websocket"
)

type HubHandler struct {
	Hub      *websocket.Hub
	Sessions *websocket.SessionDirectory
}

func NewHubHandler(hub *websocket.Hub, sessions *websocket.SessionDirectory) *HubHandler {
	return &HubHandler{
		Hub:      hub,
		Sessions: sessions,
	}
}

func (h *HubHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "livestream-signaling",
	})
}

func (h *HubHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	stats := h.Hub.GetHubStats()

	resp := map[string]any{
		"hub":             stats,
		"active_sessions": h.Sessions.Len(),
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(handlers.CreateResponse("get signaling stats", resp, reqID))
	return nil
}
