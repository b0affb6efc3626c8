package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/mjaja25/exam-website-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AdminHandler serves the content management and settings endpoints.
type AdminHandler struct {
	content  *service.ContentService
	mcq      *service.MCQService
	settings *service.SettingService
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(content *service.ContentService, mcq *service.MCQService, settings *service.SettingService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		content:  content,
		mcq:      mcq,
		settings: settings,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// ─── Passages ───────────────────────────────────────────────────────────────

// CreatePassage handles POST /api/v1/admin/passages.
func (h *AdminHandler) CreatePassage(c *gin.Context) {
	var req model.CreatePassageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, err := h.content.CreatePassage(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("create passage failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// ListPassages handles GET /api/v1/admin/passages.
func (h *AdminHandler) ListPassages(c *gin.Context) {
	passages, err := h.content.ListPassages(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list passages failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, passages)
}

// DeletePassage handles DELETE /api/v1/admin/passages/:id.
func (h *AdminHandler) DeletePassage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.content.DeletePassage(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Msg("delete passage failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ─── Letter questions ───────────────────────────────────────────────────────

// CreateLetterQuestion handles POST /api/v1/admin/letter-questions.
func (h *AdminHandler) CreateLetterQuestion(c *gin.Context) {
	var req model.CreateLetterQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	q, err := h.content.CreateLetterQuestion(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("create letter question failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, q)
}

// ListLetterQuestions handles GET /api/v1/admin/letter-questions.
func (h *AdminHandler) ListLetterQuestions(c *gin.Context) {
	questions, err := h.content.ListLetterQuestions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list letter questions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, questions)
}

// DeleteLetterQuestion handles DELETE /api/v1/admin/letter-questions/:id.
func (h *AdminHandler) DeleteLetterQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteLetterQuestion(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Msg("delete letter question failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ─── Excel questions ────────────────────────────────────────────────────────

// CreateExcelQuestion handles POST /api/v1/admin/excel-questions
// (multipart: name, question, solution_file).
func (h *AdminHandler) CreateExcelQuestion(c *gin.Context) {
	var req model.CreateExcelQuestionRequest
	if err := c.ShouldBind(&req); err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, validator.TranslateErrors(err))
		return
	}
	file, err := c.FormFile("solution_file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	q, err := h.content.CreateExcelQuestion(c.Request.Context(), &req, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		default:
			h.log.Error().Err(err).Msg("create excel question failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, q)
}

// ListExcelQuestions handles GET /api/v1/admin/excel-questions.
func (h *AdminHandler) ListExcelQuestions(c *gin.Context) {
	questions, err := h.content.ListExcelQuestions(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list excel questions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, questions)
}

// DeleteExcelQuestion handles DELETE /api/v1/admin/excel-questions/:id.
func (h *AdminHandler) DeleteExcelQuestion(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.content.DeleteExcelQuestion(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("delete excel question failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ─── MCQ sets ───────────────────────────────────────────────────────────────

// CreateMCQSet handles POST /api/v1/admin/mcq-sets.
func (h *AdminHandler) CreateMCQSet(c *gin.Context) {
	var req model.CreateMCQSetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	set, err := h.mcq.CreateSet(c.Request.Context(), &req)
	if err != nil {
		h.log.Error().Err(err).Msg("create mcq set failed")
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	response.Success(c, http.StatusCreated, set)
}

// ListMCQSets handles GET /api/v1/admin/mcq-sets.
func (h *AdminHandler) ListMCQSets(c *gin.Context) {
	sets, err := h.mcq.ListSets(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list mcq sets failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, sets)
}

// GetMCQSet handles GET /api/v1/admin/mcq-sets/:id.
func (h *AdminHandler) GetMCQSet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	set, err := h.mcq.GetSet(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("get mcq set failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, set)
}

// ToggleMCQSet handles PATCH /api/v1/admin/mcq-sets/:id.
func (h *AdminHandler) ToggleMCQSet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.ToggleMCQSetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.mcq.SetActive(c.Request.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("toggle mcq set failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": req.IsActive})
}

// DeleteMCQSet handles DELETE /api/v1/admin/mcq-sets/:id.
func (h *AdminHandler) DeleteMCQSet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.mcq.DeleteSet(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Msg("delete mcq set failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ─── Settings ───────────────────────────────────────────────────────────────

// GetSettings handles GET /api/v1/admin/settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("get settings failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/v1/admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.settings.Update(c.Request.Context(), req.Settings); err != nil {
		h.log.Error().Err(err).Msg("update settings failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": len(req.Settings)})
}
