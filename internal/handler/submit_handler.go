package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/grader"
	"github.com/mjaja25/exam-website-backend/internal/middleware"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/mjaja25/exam-website-backend/internal/validator"
	"github.com/rs/zerolog"
)

// SubmitHandler serves the exam stage submission endpoints.
type SubmitHandler struct {
	sessions *service.SessionService
	uploads  *service.UploadService
	log      zerolog.Logger
}

// NewSubmitHandler creates a new SubmitHandler.
func NewSubmitHandler(sessions *service.SessionService, uploads *service.UploadService, log zerolog.Logger) *SubmitHandler {
	return &SubmitHandler{
		sessions: sessions,
		uploads:  uploads,
		log:      log.With().Str("handler", "submit").Logger(),
	}
}

// failSubmit translates the shared stage-write failure modes. Returns false
// when the error was not one of them.
func (h *SubmitHandler) failSubmit(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrSessionCompleted):
		response.Fail(c, http.StatusConflict, response.ErrSessionComplete)
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, grader.ErrGradingUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrGradingUnavailable)
	case errors.Is(err, grader.ErrGradingParse):
		response.Fail(c, http.StatusBadGateway, response.ErrGradingParse)
	case errors.Is(err, grader.ErrMalformedAnswerKey):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrMalformedKey)
	default:
		return false
	}
	return true
}

// Typing handles POST /api/v1/submit/typing.
func (h *SubmitHandler) Typing(c *gin.Context) {
	var req model.SubmitTypingRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessions.SubmitTyping(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if h.failSubmit(c, err) {
			return
		}
		h.log.Error().Err(err).Str("session_id", req.SessionID).Msg("typing submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// Letter handles POST /api/v1/submit/letter.
func (h *SubmitHandler) Letter(c *gin.Context) {
	var req model.SubmitLetterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessions.SubmitLetter(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if h.failSubmit(c, err) {
			return
		}
		h.log.Error().Err(err).Str("session_id", req.SessionID).Msg("letter submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// Excel handles POST /api/v1/submit/excel (multipart: session_id,
// question_id, file). The workbook is stored before grading so the
// submission survives a grading failure.
func (h *SubmitHandler) Excel(c *gin.Context) {
	sessionID := c.PostForm("session_id")
	if len(sessionID) < 8 || len(sessionID) > 64 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"session_id": "session_id must be between 8 and 64 characters"})
		return
	}
	questionID, err := uuid.Parse(c.PostForm("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	path, err := h.uploads.SaveWorkbook(file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		case errors.Is(err, service.ErrFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		default:
			h.log.Error().Err(err).Msg("workbook store failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessions.SubmitExcel(c.Request.Context(), claims.UserID, sessionID, questionID, path)
	if err != nil {
		if h.failSubmit(c, err) {
			return
		}
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("excel submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// MCQ handles POST /api/v1/submit/excel-mcq.
func (h *SubmitHandler) MCQ(c *gin.Context) {
	var req model.SubmitMCQRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	claims := middleware.GetClaims(c)
	session, err := h.sessions.SubmitMCQ(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrSetMismatch) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		if h.failSubmit(c, err) {
			return
		}
		h.log.Error().Err(err).Str("session_id", req.SessionID).Msg("mcq submit failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, session)
}
