package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/hackathon-platform/middleware"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/roster"
	"github.com/Dosada05/hackathon-platform/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// CreateTeam godoc
// @Summary Создать команду, создатель становится лидером
// @Tags teams
// @Accept json
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Param input body services.CreateTeamInput true "Команда"
// @Success 201 {object} map[string]interface{} "team"
// @Failure 409 {object} map[string]string "Уже в команде / формирование команд закрыто"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), hackathonID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

// ListTeams godoc
// @Summary Команды хакатона
// @Tags teams
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "teams"
// @Router /hackathons/{hackathonID}/teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.teamService.ListByHackathon(r.Context(), hackathonID, middleware.OptionalUserID(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// GetTeamByID godoc
// @Summary Команда по ID
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 404 {object} map[string]string
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Get(r.Context(), teamID, middleware.OptionalUserID(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// AddMember godoc
// @Summary Лидер добавляет участника напрямую
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param input body services.AddMemberInput true "Участник"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 403 {object} map[string]string "Только лидер"
// @Failure 409 {object} map[string]string "Команда заполнена / уже в команде"
// @Security BearerAuth
// @Router /teams/{teamID}/members [post]
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddMemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID == "" {
		badRequestResponse(w, r, errors.New("user_id is required"))
		return
	}

	team, err := h.teamService.AddMember(r.Context(), teamID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// RemoveMember godoc
// @Summary Исключить участника или выйти из команды
// @Tags teams
// @Param teamID path string true "Team ID"
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]interface{} "removed"
// @Failure 409 {object} map[string]string "Лидера удалить нельзя"
// @Security BearerAuth
// @Router /teams/{teamID}/members/{userID} [delete]
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	removed, err := h.teamService.RemoveMember(r.Context(), teamID, actorID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"removed": removed})
}

// TransferLeadership godoc
// @Summary Передать лидерство
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Security BearerAuth
// @Router /teams/{teamID}/leader [post]
func (h *TeamHandler) TransferLeadership(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
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

	team, err := h.teamService.TransferLeadership(r.Context(), teamID, actorID, input.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// AddNote godoc
// @Summary Заметка на доске команды
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 201 {object} map[string]interface{} "note"
// @Security BearerAuth
// @Router /teams/{teamID}/notes [post]
func (h *TeamHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input noteRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	note, err := h.teamService.AddNote(r.Context(), teamID, actorID, roster.NoteInput{
		Content:  input.Content,
		Type:     input.Type,
		Tags:     input.Tags,
		IsPinned: input.IsPinned,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"note": note})
}

// Withdraw godoc
// @Summary Снять команду с хакатона
// @Tags teams
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Security BearerAuth
// @Router /teams/{teamID}/withdraw [post]
func (h *TeamHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Withdraw(r.Context(), teamID, actorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// Disqualify godoc
// @Summary Дисквалифицировать команду
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 403 {object} map[string]string "Только организаторы"
// @Security BearerAuth
// @Router /teams/{teamID}/disqualify [post]
func (h *TeamHandler) Disqualify(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Disqualify(r.Context(), teamID, actorID, input.Reason)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// AwardPrize godoc
// @Summary Наградить команду
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "team"
// @Security BearerAuth
// @Router /teams/{teamID}/awards [post]
func (h *TeamHandler) AwardPrize(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Award string `json:"award"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Award == "" {
		badRequestResponse(w, r, errors.New("award is required"))
		return
	}

	team, err := h.teamService.AwardPrize(r.Context(), teamID, actorID, input.Award)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// UploadLogo godoc
// @Summary Загрузить логотип команды
// @Tags teams
// @Accept multipart/form-data
// @Produce json
// @Param teamID path string true "Team ID"
// @Param file formData file true "Изображение"
// @Success 200 {object} map[string]interface{} "team"
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /teams/{teamID}/logo [post]
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, contentType, err := readUpload(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	team, err := h.teamService.UploadLogo(r.Context(), teamID, actorID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

type noteRequest struct {
	Content  string          `json:"content"`
	Type     models.NoteType `json:"note_type"`
	Tags     []string        `json:"tags"`
	IsPinned bool            `json:"is_pinned"`
}
