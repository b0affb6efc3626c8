package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/middleware"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/rs/zerolog"
)

// QuestionHandler serves exam content to test takers: random passages,
// prompts, spreadsheet tasks, and the MCQ set rotation.
type QuestionHandler struct {
	content *service.ContentService
	mcq     *service.MCQService
	log     zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(content *service.ContentService, mcq *service.MCQService, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		content: content,
		mcq:     mcq,
		log:     log.With().Str("handler", "question").Logger(),
	}
}

// Passage handles GET /api/v1/questions/passage.
func (h *QuestionHandler) Passage(c *gin.Context) {
	p, err := h.content.RandomPassage(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("passage lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Letter handles GET /api/v1/questions/letter.
func (h *QuestionHandler) Letter(c *gin.Context) {
	q, err := h.content.RandomLetterQuestion(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("letter question lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// Excel handles GET /api/v1/questions/excel.
func (h *QuestionHandler) Excel(c *gin.Context) {
	q, err := h.content.RandomExcelQuestion(c.Request.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("excel question lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, q)
}

// NextMCQSet handles GET /api/v1/mcq/next-set.
func (h *QuestionHandler) NextMCQSet(c *gin.Context) {
	claims := middleware.GetClaims(c)
	set, err := h.mcq.NextSet(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSets) {
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveSets)
			return
		}
		h.log.Error().Err(err).Int("user_id", claims.UserID).Msg("set rotation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, set)
}
