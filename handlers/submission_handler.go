package handlers

import (
	"net/http"

	"github.com/Dosada05/hackathon-platform/judging"
	"github.com/Dosada05/hackathon-platform/services"
	"github.com/Dosada05/hackathon-platform/submission"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	judgingService    services.JudgingService
}

func NewSubmissionHandler(ss services.SubmissionService, js services.JudgingService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: ss,
		judgingService:    js,
	}
}

// UpdateSubmission godoc
// @Summary Редактировать черновик проекта
// @Tags submissions
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param input body submission.Patch true "Изменяемые поля"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 409 {object} map[string]string "Проект уже отправлен / прием закрыт"
// @Security BearerAuth
// @Router /teams/{teamID}/submission [put]
func (h *SubmissionHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var patch submission.Patch
	if err := readJSON(w, r, &patch); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sub, err := h.submissionService.Update(r.Context(), teamID, actorID, patch)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"submission": sub})
}

// FinalizeSubmission godoc
// @Summary Отправить проект на оценку
// @Tags submissions
// @Produce json
// @Param teamID path string true "Team ID"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 422 {object} map[string]string "Нет названия или описания"
// @Security BearerAuth
// @Router /teams/{teamID}/submission/finalize [post]
func (h *SubmissionHandler) FinalizeSubmission(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sub, err := h.submissionService.Finalize(r.Context(), teamID, actorID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"submission": sub})
}

// UploadMedia godoc
// @Summary Загрузить скриншот проекта
// @Tags submissions
// @Accept multipart/form-data
// @Produce json
// @Param teamID path string true "Team ID"
// @Param file formData file true "Изображение"
// @Success 200 {object} map[string]interface{} "submission"
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /teams/{teamID}/submission/media [post]
func (h *SubmissionHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
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

	sub, err := h.submissionService.UploadMedia(r.Context(), teamID, actorID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"submission": sub})
}

// ScoreTeam godoc
// @Summary Оценка судьи (повторная оценка заменяет предыдущую)
// @Tags judging
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param input body judging.ScoreInput true "Баллы 0-10 по критериям"
// @Success 200 {object} map[string]interface{} "score"
// @Failure 403 {object} map[string]string "Не судья"
// @Failure 409 {object} map[string]string "Оценивание закрыто / проект не отправлен"
// @Security BearerAuth
// @Router /teams/{teamID}/scores [post]
func (h *SubmissionHandler) ScoreTeam(w http.ResponseWriter, r *http.Request) {
	judgeID, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input judging.ScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	score, err := h.judgingService.Score(r.Context(), teamID, judgeID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"score": score})
}
