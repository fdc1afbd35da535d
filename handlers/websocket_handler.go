package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/hackathon-platform/middleware"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/services"
)

type WebSocketHandler struct {
	hub              *realtime.Hub
	hackathonService services.HackathonService
	upgrader         websocket.Upgrader
	logger           *slog.Logger
}

// NewWebSocketHandler accepts upgrades from allowedOrigins; "*" or an empty list
// allows any origin.
func NewWebSocketHandler(hub *realtime.Hub, hs services.HackathonService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub:              hub,
		hackathonService: hs,
		logger:           logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowAll || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// ServeWs godoc
// @Summary Поток событий хакатона (WebSocket)
// @Tags realtime
// @Param hackathonID path string true "Hackathon ID"
// @Success 101
// @Failure 404 {object} map[string]string
// @Router /ws/hackathons/{hackathonID} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// черновики скрыты так же, как в GET /hackathons/{id}
	if _, err := h.hackathonService.Get(r.Context(), hackathonID, middleware.OptionalUserID(r.Context())); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой
		h.logger.WarnContext(r.Context(), "websocket upgrade failed",
			slog.String("hackathon_id", hackathonID), slog.Any("error", err))
		return
	}

	h.hub.Attach(hackathonID, conn)
	h.logger.DebugContext(r.Context(), "websocket client attached",
		slog.String("hackathon_id", hackathonID), slog.Int("room_size", h.hub.RoomSize(hackathonID)))
}
