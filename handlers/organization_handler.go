package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/hackathon-platform/services"
)

type OrganizationHandler struct {
	orgService services.OrganizationService
}

func NewOrganizationHandler(os services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: os}
}

// Create godoc
// @Summary Создать организацию
// @Tags organizations
// @Accept json
// @Produce json
// @Param input body services.CreateOrganizationInput true "Название"
// @Success 201 {object} map[string]interface{} "organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateOrganizationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	org, err := h.orgService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"organization": org})
}

// Get godoc
// @Summary Организация по ID
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} map[string]interface{} "organization"
// @Failure 404 {object} map[string]string
// @Router /organizations/{orgID} [get]
func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, err := getIDFromURL(r, "orgID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	org, err := h.orgService.Get(r.Context(), orgID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"organization": org})
}

// AddAdmin godoc
// @Summary Назначить администратора организации
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} map[string]interface{} "organization"
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /organizations/{orgID}/admins [post]
func (h *OrganizationHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	orgID, err := getIDFromURL(r, "orgID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		UserID string `json:"user_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == "" {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}

	org, err := h.orgService.AddAdmin(r.Context(), orgID, actorID, input.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"organization": org})
}
