package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/hackathon-platform/services"
)

type InviteHandler struct {
	teamService services.TeamService
}

func NewInviteHandler(ts services.TeamService) *InviteHandler {
	return &InviteHandler{teamService: ts}
}

// SendInvitation godoc
// @Summary Пригласить в команду по email или user_id
// @Tags invitations
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param input body services.InviteInput true "Кого приглашаем"
// @Success 201 {object} map[string]interface{} "invitation"
// @Failure 403 {object} map[string]string "Только лидер"
// @Failure 409 {object} map[string]string "Уже участник / приглашение уже отправлено"
// @Security BearerAuth
// @Router /teams/{teamID}/invitations [post]
func (h *InviteHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.InviteInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" && input.UserID == "" {
		badRequestResponse(w, r, errors.New("email or user_id is required"))
		return
	}

	invitation, err := h.teamService.SendInvitation(r.Context(), teamID, actorID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"invitation": invitation})
}

// AcceptInvitation godoc
// @Summary Принять приглашение команды
// @Tags invitations
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 404 {object} map[string]string "Нет приглашения"
// @Failure 410 {object} map[string]string "Приглашение истекло"
// @Security BearerAuth
// @Router /teams/{teamID}/invitations/accept [post]
func (h *InviteHandler) AcceptInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.AcceptInvitation(r.Context(), teamID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// DeclineInvitation godoc
// @Summary Отклонить приглашение команды
// @Tags invitations
// @Param teamID path string true "Team ID"
// @Success 204
// @Security BearerAuth
// @Router /teams/{teamID}/invitations/decline [post]
func (h *InviteHandler) DeclineInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.DeclineInvitation(r.Context(), teamID, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptByToken godoc
// @Summary Принять приглашение по ссылке из письма
// @Tags invitations
// @Produce json
// @Param token path string true "Токен приглашения"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Security BearerAuth
// @Router /invitations/{token}/accept [post]
func (h *InviteHandler) AcceptByToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	token := chi.URLParam(r, "token")
	if token == "" {
		badRequestResponse(w, r, errors.New("missing invitation token"))
		return
	}

	team, err := h.teamService.AcceptInvitationByToken(r.Context(), token, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}
