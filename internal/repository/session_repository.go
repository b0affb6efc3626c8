package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// SessionRepository handles exam session persistence. Every stage write is an
// upsert keyed on (session_id, user_id): the first stage submission creates
// the row, later stages fill in their columns, and total_score is recomputed
// inside the same statement from whichever stage scores are present.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `
	id, session_id, user_id, test_pattern, attempt_mode, status,
	wpm, accuracy, typing_score,
	letter_content, letter_score, letter_feedback,
	excel_score, excel_file_path, excel_feedback,
	mcq_score, mcq_review,
	total_score, submitted_at, completed_at`

func scanSession(row interface{ Scan(...any) error }) (*model.ExamSession, error) {
	s := &model.ExamSession{}
	var review []byte
	err := row.Scan(
		&s.ID, &s.SessionID, &s.UserID, &s.TestPattern, &s.AttemptMode, &s.Status,
		&s.WPM, &s.Accuracy, &s.TypingScore,
		&s.LetterContent, &s.LetterScore, &s.LetterFeedback,
		&s.ExcelScore, &s.ExcelFilePath, &s.ExcelFeedback,
		&s.MCQScore, &review,
		&s.TotalScore, &s.SubmittedAt, &s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(review) > 0 {
		if err := json.Unmarshal(review, &s.MCQReview); err != nil {
			return nil, fmt.Errorf("decode mcq review: %w", err)
		}
	}
	return s, nil
}

// GetBySessionAndUser retrieves a session scoped to its owner.
func (r *SessionRepository) GetBySessionAndUser(ctx context.Context, sessionID string, userID int) (*model.ExamSession, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM exam_sessions
		 WHERE session_id = $1 AND user_id = $2`, sessionID, userID)
	return scanSession(row)
}

// GetBySessionID retrieves a session by its public identifier regardless of
// owner. Used by result views and head-to-head comparison.
func (r *SessionRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.ExamSession, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM exam_sessions
		 WHERE session_id = $1`, sessionID)
	return scanSession(row)
}

// UpsertTypingStage writes the typing stage and recomputes the running total.
func (r *SessionRepository) UpsertTypingStage(ctx context.Context, sessionID string, userID int, pattern model.TestPattern, wpm, accuracy float64, typingScore int) (*model.ExamSession, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions
			(session_id, user_id, test_pattern, attempt_mode, status, wpm, accuracy, typing_score, total_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 ON CONFLICT (session_id, user_id) DO UPDATE SET
			wpm = EXCLUDED.wpm,
			accuracy = EXCLUDED.accuracy,
			typing_score = EXCLUDED.typing_score,
			total_score = EXCLUDED.typing_score
				+ COALESCE(exam_sessions.letter_score, 0)
				+ COALESCE(exam_sessions.excel_score, 0)
				+ COALESCE(exam_sessions.mcq_score, 0)
		 RETURNING `+sessionColumns,
		sessionID, userID, pattern, model.ModeExam, model.SessionInProgress,
		wpm, accuracy, typingScore)
	return scanSession(row)
}

// UpsertLetterStage writes the letter stage and recomputes the running total.
// The session's pattern defaults to standard when the letter arrives first.
func (r *SessionRepository) UpsertLetterStage(ctx context.Context, sessionID string, userID int, content string, score int, feedback string) (*model.ExamSession, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions
			(session_id, user_id, test_pattern, attempt_mode, status, letter_content, letter_score, letter_feedback, total_score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7)
		 ON CONFLICT (session_id, user_id) DO UPDATE SET
			letter_content = EXCLUDED.letter_content,
			letter_score = EXCLUDED.letter_score,
			letter_feedback = EXCLUDED.letter_feedback,
			total_score = COALESCE(exam_sessions.typing_score, 0)
				+ EXCLUDED.letter_score
				+ COALESCE(exam_sessions.excel_score, 0)
				+ COALESCE(exam_sessions.mcq_score, 0)
		 RETURNING `+sessionColumns,
		sessionID, userID, model.PatternStandard, model.ModeExam, model.SessionInProgress,
		content, score, feedback)
	return scanSession(row)
}

// CompleteWithExcel writes the excel stage, recomputes the total, and flips
// the session to COMPLETED (standard pattern final stage).
func (r *SessionRepository) CompleteWithExcel(ctx context.Context, sessionID string, userID int, score int, filePath, feedback string) (*model.ExamSession, error) {
	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions
			(session_id, user_id, test_pattern, attempt_mode, status, excel_score, excel_file_path, excel_feedback, total_score, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $6, $9)
		 ON CONFLICT (session_id, user_id) DO UPDATE SET
			excel_score = EXCLUDED.excel_score,
			excel_file_path = EXCLUDED.excel_file_path,
			excel_feedback = EXCLUDED.excel_feedback,
			total_score = COALESCE(exam_sessions.typing_score, 0)
				+ COALESCE(exam_sessions.letter_score, 0)
				+ EXCLUDED.excel_score
				+ COALESCE(exam_sessions.mcq_score, 0),
			status = 'COMPLETED',
			completed_at = EXCLUDED.completed_at
		 RETURNING `+sessionColumns,
		sessionID, userID, model.PatternStandard, model.ModeExam, model.SessionCompleted,
		score, filePath, feedback, now)
	return scanSession(row)
}

// CompleteWithMCQ writes the MCQ stage with its per-question review,
// recomputes the total, and flips the session to COMPLETED (new pattern
// final stage).
func (r *SessionRepository) CompleteWithMCQ(ctx context.Context, sessionID string, userID int, score int, review []model.MCQReviewItem) (*model.ExamSession, error) {
	reviewJSON, err := json.Marshal(review)
	if err != nil {
		return nil, fmt.Errorf("encode mcq review: %w", err)
	}

	now := time.Now()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions
			(session_id, user_id, test_pattern, attempt_mode, status, mcq_score, mcq_review, total_score, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $6, $8)
		 ON CONFLICT (session_id, user_id) DO UPDATE SET
			mcq_score = EXCLUDED.mcq_score,
			mcq_review = EXCLUDED.mcq_review,
			total_score = COALESCE(exam_sessions.typing_score, 0)
				+ COALESCE(exam_sessions.letter_score, 0)
				+ COALESCE(exam_sessions.excel_score, 0)
				+ EXCLUDED.mcq_score,
			status = 'COMPLETED',
			completed_at = EXCLUDED.completed_at
		 RETURNING `+sessionColumns,
		sessionID, userID, model.PatternNew, model.ModeExam, model.SessionCompleted,
		score, reviewJSON, now)
	return scanSession(row)
}

// ListRecentCompleted returns the user's most recent completed exam sessions
// for a pattern, newest first. Used for trend computation.
func (r *SessionRepository) ListRecentCompleted(ctx context.Context, userID int, pattern model.TestPattern, limit int) ([]model.ExamSession, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM exam_sessions
		 WHERE user_id = $1 AND test_pattern = $2
		   AND status = 'COMPLETED' AND attempt_mode = 'exam'
		 ORDER BY submitted_at DESC
		 LIMIT $3`, userID, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ExamSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// DeleteByUser removes all sessions for a user (cascading account deletion).
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exam_sessions WHERE user_id = $1`, userID)
	return err
}
