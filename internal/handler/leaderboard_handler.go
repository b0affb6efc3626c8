package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/middleware"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/response"
	"github.com/mjaja25/exam-website-backend/internal/service"
	"github.com/rs/zerolog"
)

// LeaderboardHandler serves ranking and comparison endpoints.
type LeaderboardHandler struct {
	boards *service.LeaderboardService
	log    zerolog.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(boards *service.LeaderboardService, log zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		boards: boards,
		log:    log.With().Str("handler", "leaderboard").Logger(),
	}
}

// All handles GET /api/v1/leaderboard/all?timeframe=all|week|month.
func (h *LeaderboardHandler) All(c *gin.Context) {
	tf := model.Timeframe(c.DefaultQuery("timeframe", string(model.TimeframeAll)))

	boards, err := h.boards.GetAll(c.Request.Context(), tf)
	if err != nil {
		switch tf {
		case model.TimeframeAll, model.TimeframeWeek, model.TimeframeMonth:
			h.log.Error().Err(err).Str("timeframe", string(tf)).Msg("leaderboard computation failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		default:
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"timeframe": "must be one of all, week, month"})
		}
		return
	}
	response.Success(c, http.StatusOK, boards)
}

// MyRank handles GET /api/v1/leaderboard/my-rank.
func (h *LeaderboardHandler) MyRank(c *gin.Context) {
	claims := middleware.GetClaims(c)
	rank, err := h.boards.GetMyRank(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Int("user_id", claims.UserID).Msg("rank lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, rank)
}

// Compare handles GET /api/v1/leaderboard/compare/:session_id.
func (h *LeaderboardHandler) Compare(c *gin.Context) {
	claims := middleware.GetClaims(c)
	result, err := h.boards.Compare(c.Request.Context(), claims.UserID, c.Param("session_id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("comparison failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, result)
}
