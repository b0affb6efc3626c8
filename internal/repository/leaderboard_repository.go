package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// categorySpec maps a leaderboard category to its pattern and score column.
// An explicit table instead of string matching on category names keeps the
// column selection auditable and injection-safe.
type categorySpec struct {
	pattern model.TestPattern
	column  string
}

var categorySpecs = map[model.Category]categorySpec{
	model.CategoryStdOverall: {model.PatternStandard, "total_score"},
	model.CategoryStdTyping:  {model.PatternStandard, "typing_score"},
	model.CategoryStdLetter:  {model.PatternStandard, "letter_score"},
	model.CategoryStdExcel:   {model.PatternStandard, "excel_score"},
	model.CategoryNewOverall: {model.PatternNew, "total_score"},
	model.CategoryNewTyping:  {model.PatternNew, "typing_score"},
	model.CategoryNewMCQ:     {model.PatternNew, "mcq_score"},
}

// LeaderboardRepository answers aggregation queries over completed exam
// sessions: best-per-user boards, rank counts, and trends.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// TopByCategory computes the best result per user for a category and returns
// the top rows in rank order. Only completed exam-mode sessions count; a
// non-zero since restricts to sessions submitted after it.
func (r *LeaderboardRepository) TopByCategory(ctx context.Context, category model.Category, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	spec, ok := categorySpecs[category]
	if !ok {
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	// DISTINCT ON keeps each user's single best row (ties broken by earliest
	// submission); the outer ORDER BY produces the board order.
	query := fmt.Sprintf(`
		SELECT user_id, user_name, session_id, score, wpm, accuracy, submitted_at
		FROM (
			SELECT DISTINCT ON (s.user_id)
				s.user_id, u.name AS user_name, s.session_id,
				s.%[1]s AS score, s.wpm, s.accuracy, s.submitted_at
			FROM exam_sessions s
			JOIN users u ON u.id = s.user_id
			WHERE s.status = 'COMPLETED'
			  AND s.attempt_mode = 'exam'
			  AND s.test_pattern = $1
			  AND s.%[1]s IS NOT NULL
			  AND ($2::timestamptz IS NULL OR s.submitted_at >= $2)
			ORDER BY s.user_id, s.%[1]s DESC, s.submitted_at ASC
		) best
		ORDER BY score DESC, submitted_at ASC
		LIMIT $3`, spec.column)

	var sinceArg *time.Time
	if !since.IsZero() {
		sinceArg = &since
	}

	rows, err := r.pool.Query(ctx, query, spec.pattern, sinceArg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	rank := 0
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.SessionID, &e.Score, &e.WPM, &e.Accuracy, &e.SubmittedAt); err != nil {
			return nil, err
		}
		rank++
		e.Rank = rank
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BestTotal returns a user's highest completed total for a pattern.
// found is false when the user has no completed session there.
func (r *LeaderboardRepository) BestTotal(ctx context.Context, userID int, pattern model.TestPattern) (best int, found bool, err error) {
	var b *int
	err = r.pool.QueryRow(ctx,
		`SELECT MAX(total_score) FROM exam_sessions
		 WHERE user_id = $1 AND test_pattern = $2
		   AND status = 'COMPLETED' AND attempt_mode = 'exam'`,
		userID, pattern,
	).Scan(&b)
	if err != nil {
		return 0, false, err
	}
	if b == nil {
		return 0, false, nil
	}
	return *b, true, nil
}

// CountStrictlyHigher counts how many other users' best totals strictly
// exceed the given score in a pattern.
func (r *LeaderboardRepository) CountStrictlyHigher(ctx context.Context, userID int, pattern model.TestPattern, score int) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM (
			SELECT user_id, MAX(total_score) AS best
			FROM exam_sessions
			WHERE test_pattern = $1 AND status = 'COMPLETED' AND attempt_mode = 'exam'
			GROUP BY user_id
		 ) t
		 WHERE t.best > $2 AND t.user_id <> $3`,
		pattern, score, userID,
	).Scan(&n)
	return n, err
}

// CountDistinctUsers counts users with at least one completed session in a
// pattern.
func (r *LeaderboardRepository) CountDistinctUsers(ctx context.Context, pattern model.TestPattern) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT user_id) FROM exam_sessions
		 WHERE test_pattern = $1 AND status = 'COMPLETED' AND attempt_mode = 'exam'`,
		pattern,
	).Scan(&n)
	return n, err
}

// BestSession returns the user's highest-scoring completed session for a
// pattern, ties broken by earliest submission.
func (r *LeaderboardRepository) BestSession(ctx context.Context, userID int, pattern model.TestPattern) (*model.ExamSession, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM exam_sessions
		 WHERE user_id = $1 AND test_pattern = $2
		   AND status = 'COMPLETED' AND attempt_mode = 'exam'
		 ORDER BY total_score DESC, submitted_at ASC
		 LIMIT 1`, userID, pattern)
	return scanSession(row)
}
