package handlers

import (
	"context"
	"net/http"

	"github.com/Dosada05/hackathon-platform/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(rs services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register godoc
// @Summary Зарегистрироваться на хакатон
// @Tags registration
// @Description Сразу в участники или в очередь на одобрение, если хакатон этого требует.
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 201 {object} map[string]interface{} "outcome: registered | pending_approval"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 404 {object} map[string]string "Хакатон не найден"
// @Failure 409 {object} map[string]string "Уже зарегистрирован / мест нет / регистрация закрыта"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/registration [post]
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	outcome, err := h.registrationService.Register(r.Context(), hackathonID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"outcome": outcome})
}

// Unregister godoc
// @Summary Отменить регистрацию или заявку
// @Tags registration
// @Param hackathonID path string true "Hackathon ID"
// @Success 204
// @Failure 409 {object} map[string]string "Сначала нужно выйти из команды"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/registration [delete]
func (h *RegistrationHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.registrationService.Unregister(r.Context(), hackathonID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Status godoc
// @Summary Статус регистрации текущего пользователя
// @Tags registration
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} services.RegistrationStatus
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/registration [get]
func (h *RegistrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	status, err := h.registrationService.Status(r.Context(), hackathonID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, status)
}

// Approve godoc
// @Summary Одобрить заявку
// @Tags registration
// @Param hackathonID path string true "Hackathon ID"
// @Param userID path string true "User ID"
// @Success 204
// @Failure 403 {object} map[string]string "Только организаторы"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/pending/{userID}/approve [post]
func (h *RegistrationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.registrationService.Approve)
}

// Reject godoc
// @Summary Отклонить заявку
// @Tags registration
// @Param hackathonID path string true "Hackathon ID"
// @Param userID path string true "User ID"
// @Success 204
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/pending/{userID}/reject [post]
func (h *RegistrationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.registrationService.Reject)
}

func (h *RegistrationHandler) decide(w http.ResponseWriter, r *http.Request, decision func(ctx context.Context, hackathonID, actorID, userID string) error) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := decision(r.Context(), hackathonID, actorID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
