package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/cache"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/rs/zerolog"
)

// boardSize is how many rows each published leaderboard carries.
const boardSize = 25

// compareNoSessionMessage is returned on the You side of a head-to-head
// comparison when the caller has nothing to compare with.
const compareNoSessionMessage = "You haven't completed an exam in this pattern yet. Finish one to see how you stack up."

// Coaching one-liners attached to comparison gaps where the caller trails.
var gapTips = map[string]string{
	"typing": "Raise your sustained speed with short daily drills at slightly above your comfortable pace.",
	"letter": "Review the formal letter format: subject emphasis, salutation, and paragraph structure carry points.",
	"excel":  "Practice the core formula set (SUM, AVERAGE, lookups) until the steps are automatic.",
	"mcq":    "Re-take practice sets and read the review page for every question you missed.",
	"total":  "Focus on your weakest stage first; it is the cheapest place to gain points.",
}

// LeaderboardService publishes category leaderboards and per-user standings.
// Board computation is the most expensive query in the system, so results are
// held in a short-lived in-process cache keyed by timeframe.
type LeaderboardService struct {
	boards   *repository.LeaderboardRepository
	sessions *repository.SessionRepository
	users    *repository.UserRepository
	cache    *cache.TTLCache[model.Timeframe, *model.Leaderboards]
	now      func() time.Time
	log      zerolog.Logger
}

// NewLeaderboardService creates a LeaderboardService. A nil now func defaults
// to time.Now; tests inject a fake clock through it.
func NewLeaderboardService(
	boards *repository.LeaderboardRepository,
	sessions *repository.SessionRepository,
	users *repository.UserRepository,
	ttl time.Duration,
	now func() time.Time,
	log zerolog.Logger,
) *LeaderboardService {
	if now == nil {
		now = time.Now
	}
	return &LeaderboardService{
		boards:   boards,
		sessions: sessions,
		users:    users,
		cache:    cache.New[model.Timeframe, *model.Leaderboards](ttl, now),
		now:      now,
		log:      log.With().Str("component", "leaderboard-service").Logger(),
	}
}

// sinceFor converts a timeframe into an aggregation lower bound. Zero means
// no bound.
func (s *LeaderboardService) sinceFor(tf model.Timeframe) time.Time {
	switch tf {
	case model.TimeframeWeek:
		return s.now().AddDate(0, 0, -7)
	case model.TimeframeMonth:
		return s.now().AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// GetAll returns all seven category boards for a timeframe, served from cache
// when fresh.
func (s *LeaderboardService) GetAll(ctx context.Context, tf model.Timeframe) (*model.Leaderboards, error) {
	switch tf {
	case model.TimeframeAll, model.TimeframeWeek, model.TimeframeMonth:
	default:
		return nil, fmt.Errorf("unknown timeframe: %q", tf)
	}

	if cached, ok := s.cache.Get(tf); ok {
		return cached, nil
	}

	since := s.sinceFor(tf)
	result := &model.Leaderboards{}
	targets := map[model.Category]*[]model.LeaderboardEntry{
		model.CategoryStdOverall: &result.StdOverall,
		model.CategoryStdTyping:  &result.StdTyping,
		model.CategoryStdLetter:  &result.StdLetter,
		model.CategoryStdExcel:   &result.StdExcel,
		model.CategoryNewOverall: &result.NewOverall,
		model.CategoryNewTyping:  &result.NewTyping,
		model.CategoryNewMCQ:     &result.NewMCQ,
	}
	for _, category := range model.AllCategories {
		entries, err := s.boards.TopByCategory(ctx, category, since, boardSize)
		if err != nil {
			return nil, fmt.Errorf("compute %s board: %w", category, err)
		}
		*targets[category] = entries
	}

	s.cache.Set(tf, result)
	return result, nil
}

// GetMyRank summarizes the caller's standing in each pattern. A pattern with
// no completed session is nil.
func (s *LeaderboardService) GetMyRank(ctx context.Context, userID int) (*model.MyRank, error) {
	standard, err := s.patternRank(ctx, userID, model.PatternStandard)
	if err != nil {
		return nil, err
	}
	newPattern, err := s.patternRank(ctx, userID, model.PatternNew)
	if err != nil {
		return nil, err
	}
	return &model.MyRank{Standard: standard, NewPattern: newPattern}, nil
}

func (s *LeaderboardService) patternRank(ctx context.Context, userID int, pattern model.TestPattern) (*model.PatternRank, error) {
	best, found, err := s.boards.BestTotal(ctx, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("best total: %w", err)
	}
	if !found {
		return nil, nil
	}

	higher, err := s.boards.CountStrictlyHigher(ctx, userID, pattern, best)
	if err != nil {
		return nil, fmt.Errorf("count higher: %w", err)
	}
	total, err := s.boards.CountDistinctUsers(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rank := higher + 1
	pr := &model.PatternRank{
		BestScore:  best,
		Rank:       rank,
		TotalUsers: total,
		Percentile: computePercentile(rank, total),
	}

	recent, err := s.sessions.ListRecentCompleted(ctx, userID, pattern, 2)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	if len(recent) == 2 {
		delta := recent[0].TotalScore - recent[1].TotalScore
		direction := "up"
		if delta < 0 {
			direction = "down"
		}
		pr.Trend = &model.Trend{Delta: delta, Direction: direction}
	}
	return pr, nil
}

// computePercentile maps a 1-based rank among total users to a percentile.
// Rank 1 of 100 is the 1st percentile (lower is better).
func computePercentile(rank, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(rank) / float64(total) * 100))
}

// Compare builds a head-to-head between the caller's best session and a
// target completed session. When the caller has no completed session in the
// target's pattern, You is nil and Message explains why.
func (s *LeaderboardService) Compare(ctx context.Context, userID int, sessionID string) (*model.CompareResult, error) {
	them, err := s.sessions.GetBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if them.Status != model.SessionCompleted || them.AttemptMode != model.ModeExam {
		return nil, pgx.ErrNoRows
	}
	themUser, err := s.users.GetByID(ctx, them.UserID)
	if err != nil {
		return nil, fmt.Errorf("get target user: %w", err)
	}

	result := &model.CompareResult{
		Them: &model.CompareSide{
			UserName:    themUser.Name,
			SessionID:   them.SessionID,
			TotalScore:  them.TotalScore,
			SubmittedAt: them.SubmittedAt,
		},
	}

	mine, err := s.boards.BestSession(ctx, userID, them.TestPattern)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result.Message = compareNoSessionMessage
			return result, nil
		}
		return nil, fmt.Errorf("best session: %w", err)
	}
	me, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	result.You = &model.CompareSide{
		UserName:    me.Name,
		SessionID:   mine.SessionID,
		TotalScore:  mine.TotalScore,
		SubmittedAt: mine.SubmittedAt,
	}
	result.Gaps = buildGaps(mine, them)
	return result, nil
}

// buildGaps produces per-category comparison rows for the pattern's stages
// plus the overall total.
func buildGaps(mine, them *model.ExamSession) []model.CompareGap {
	var gaps []model.CompareGap
	add := func(category string, yours, theirs *int) {
		y, t := 0, 0
		if yours != nil {
			y = *yours
		}
		if theirs != nil {
			t = *theirs
		}
		gap := model.CompareGap{
			Category: category,
			Yours:    y,
			Theirs:   t,
			Diff:     y - t,
			Ahead:    y >= t,
		}
		if !gap.Ahead {
			gap.Tip = gapTips[category]
		}
		gaps = append(gaps, gap)
	}

	add("typing", mine.TypingScore, them.TypingScore)
	if them.TestPattern == model.PatternNew {
		add("mcq", mine.MCQScore, them.MCQScore)
	} else {
		add("letter", mine.LetterScore, them.LetterScore)
		add("excel", mine.ExcelScore, them.ExcelScore)
	}
	add("total", &mine.TotalScore, &them.TotalScore)
	return gaps
}

// GetPercentile computes a completed session's standing among all users'
// best totals in its pattern.
func (s *LeaderboardService) GetPercentile(ctx context.Context, sessionID string, userID int) (*model.Percentile, error) {
	session, err := s.sessions.GetBySessionAndUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionCompleted {
		return nil, pgx.ErrNoRows
	}

	higher, err := s.boards.CountStrictlyHigher(ctx, userID, session.TestPattern, session.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("count higher: %w", err)
	}
	total, err := s.boards.CountDistinctUsers(ctx, session.TestPattern)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	rank := higher + 1
	return &model.Percentile{
		SessionID:  session.SessionID,
		TotalScore: session.TotalScore,
		Rank:       rank,
		TotalUsers: total,
		Percentile: computePercentile(rank, total),
	}, nil
}
