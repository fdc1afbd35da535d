package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-platform/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Stats godoc
// @Summary Сводка по хакатону для организаторов
// @Tags hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} models.DashboardStats
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stats, err := h.dashboardService.GetStats(r.Context(), hackathonID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, stats)
}
