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

// ResultHandler serves the per-session result views.
type ResultHandler struct {
	sessions *service.SessionService
	boards   *service.LeaderboardService
	log      zerolog.Logger
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(sessions *service.SessionService, boards *service.LeaderboardService, log zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
		boards:   boards,
		log:      log.With().Str("handler", "result").Logger(),
	}
}

// Get handles GET /api/v1/results/:session_id. Results are owner-scoped.
func (h *ResultHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	session, err := h.sessions.GetResult(c.Request.Context(), c.Param("session_id"), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("result lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, session)
}

// Percentile handles GET /api/v1/results/:session_id/percentile.
func (h *ResultHandler) Percentile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	p, err := h.boards.GetPercentile(c.Request.Context(), c.Param("session_id"), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("percentile lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, p)
}
