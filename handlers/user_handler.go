package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-platform/services"
)

type UserHandler struct {
	userService services.UserService
	teamService services.TeamService
}

func NewUserHandler(us services.UserService, ts services.TeamService) *UserHandler {
	return &UserHandler{
		userService: us,
		teamService: ts,
	}
}

// GetMe godoc
// @Summary Профиль текущего пользователя
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "user"
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": user})
}

// UpdateMe godoc
// @Summary Обновить свой профиль
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.UpdateProfileInput true "Поля профиля"
// @Success 200 {object} map[string]interface{} "user"
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": user})
}

// GetUserByID godoc
// @Summary Публичный профиль пользователя
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]interface{} "user"
// @Failure 404 {object} map[string]string
// @Router /users/{userID} [get]
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": user.Summary()})
}

// ListMyInvitations godoc
// @Summary Входящие приглашения в команды
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "invitations"
// @Security BearerAuth
// @Router /users/me/invitations [get]
func (h *UserHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	invitations, err := h.teamService.ListMyInvitations(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"invitations": invitations})
}
