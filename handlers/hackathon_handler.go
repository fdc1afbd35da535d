package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Dosada05/hackathon-platform/middleware"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/services"
)

const maxListLimit = 100

type HackathonHandler struct {
	hackathonService services.HackathonService
}

func NewHackathonHandler(hs services.HackathonService) *HackathonHandler {
	return &HackathonHandler{hackathonService: hs}
}

// Create godoc
// @Summary Создать хакатон (черновик)
// @Tags hackathons
// @Accept json
// @Produce json
// @Param input body services.CreateHackathonInput true "Параметры хакатона"
// @Success 201 {object} map[string]interface{} "hackathon"
// @Failure 403 {object} map[string]string "Только организаторы"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /hackathons [post]
func (h *HackathonHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateHackathonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.hackathonService.Create(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"hackathon": hackathon})
}

// List godoc
// @Summary Список опубликованных хакатонов
// @Tags hackathons
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]interface{} "hackathons"
// @Router /hackathons [get]
func (h *HackathonHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHackathonFilter(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathons, err := h.hackathonService.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathons": hackathons})
}

// Get godoc
// @Summary Хакатон по ID
// @Tags hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "hackathon"
// @Failure 404 {object} map[string]string
// @Router /hackathons/{hackathonID} [get]
func (h *HackathonHandler) Get(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.hackathonService.Get(r.Context(), hackathonID, middleware.OptionalUserID(r.Context()))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathon": hackathon})
}

// Update godoc
// @Summary Изменить хакатон
// @Tags hackathons
// @Accept json
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Param input body services.UpdateHackathonInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{} "hackathon"
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /hackathons/{hackathonID} [patch]
func (h *HackathonHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateHackathonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.hackathonService.Update(r.Context(), hackathonID, userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathon": hackathon})
}

// ChangeStatus godoc
// @Summary Перевести хакатон в другой статус
// @Tags hackathons
// @Accept json
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "hackathon"
// @Failure 409 {object} map[string]string "Недопустимый переход"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/status [post]
func (h *HackathonHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Status models.HackathonStatus `json:"status"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Status == "" {
		badRequestResponse(w, r, errors.New("status is required"))
		return
	}

	hackathon, err := h.hackathonService.ChangeStatus(r.Context(), hackathonID, userID, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathon": hackathon})
}

// Publish godoc
// @Summary Опубликовать хакатон и открыть регистрацию
// @Tags hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "hackathon"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/publish [post]
func (h *HackathonHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	hackathon, err := h.hackathonService.Publish(r.Context(), hackathonID, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathon": hackathon})
}

// AddJudge godoc
// @Summary Добавить судью
// @Tags hackathons
// @Accept json
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "hackathon"
// @Security BearerAuth
// @Router /hackathons/{hackathonID}/judges [post]
func (h *HackathonHandler) AddJudge(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	hackathonID, err := getIDFromURL(r, "hackathonID")
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

	hackathon, err := h.hackathonService.AddJudge(r.Context(), hackathonID, userID, input.UserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"hackathon": hackathon})
}

// Leaderboard godoc
// @Summary Рейтинг команд
// @Tags hackathons
// @Produce json
// @Param hackathonID path string true "Hackathon ID"
// @Success 200 {object} map[string]interface{} "leaderboard"
// @Router /hackathons/{hackathonID}/leaderboard [get]
func (h *HackathonHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.hackathonService.Leaderboard(r.Context(), hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"leaderboard": standings})
}

func parseHackathonFilter(r *http.Request) (repositories.HackathonFilter, error) {
	q := r.URL.Query()
	filter := repositories.HackathonFilter{PublishedOnly: true, Limit: 20}

	if s := q.Get("status"); s != "" {
		status := models.HackathonStatus(s)
		if !status.Valid() {
			return filter, fmt.Errorf("unknown status %q", s)
		}
		filter.Status = status
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return filter, fmt.Errorf("invalid limit %q", s)
		}
		filter.Limit = min(n, maxListLimit)
	}
	if s := q.Get("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid offset %q", s)
		}
		filter.Offset = n
	}
	return filter, nil
}
