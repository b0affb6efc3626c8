package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/grader"
	"github.com/mjaja25/exam-website-backend/internal/middleware"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/mjaja25/exam-website-backend/internal/validator"
	"github.com/rs/zerolog"
)

// PracticeHandler serves ungated practice and performance analysis.
type PracticeHandler struct {
	practice *service.PracticeService
	log      zerolog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practice *service.PracticeService, log zerolog.Logger) *PracticeHandler {
	return &PracticeHandler{
		practice: practice,
		log:      log.With().Str("handler", "practice").Logger(),
	}
}

// Typing handles POST /api/v1/practice/typing.
func (h *PracticeHandler) Typing(c *gin.Context) {
	var req model.PracticeTypingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.practice.SubmitTyping(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.log.Error().Err(err).Msg("typing practice failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Letter handles POST /api/v1/practice/letter.
func (h *PracticeHandler) Letter(c *gin.Context) {
	var req model.PracticeLetterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.practice.SubmitLetter(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, grader.ErrGradingUnavailable):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrGradingUnavailable)
		case errors.Is(err, grader.ErrGradingParse):
			response.Fail(c, http.StatusBadGateway, response.ErrGradingParse)
		default:
			h.log.Error().Err(err).Msg("letter practice failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Get handles GET /api/v1/practice/:id.
func (h *PracticeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	claims := middleware.GetClaims(c)
	result, err := h.practice.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("practice lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// History handles GET /api/v1/practice?limit=N.
func (h *PracticeHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	claims := middleware.GetClaims(c)
	results, err := h.practice.History(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("practice history failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, results)
}

// Analyze handles POST /api/v1/analysis.
func (h *PracticeHandler) Analyze(c *gin.Context) {
	var req model.AnalysisRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	report, err := h.practice.Analyze(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAnalysisSource),
			errors.Is(err, grader.ErrInvalidAnalysisKind),
			errors.Is(err, grader.ErrMissingContent):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		default:
			h.log.Warn().Err(err).Str("kind", req.Kind).Msg("analysis unavailable")
			response.Fail(c, http.StatusServiceUnavailable, response.ErrAnalysisFailed)
		}
		return
	}
	response.Success(c, http.StatusOK, report)
}
