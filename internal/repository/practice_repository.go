package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// PracticeRepository handles practice attempt persistence. Practice results
// are complete, independent records with no in-progress state.
type PracticeRepository struct {
	pool *pgxpool.Pool
}

// NewPracticeRepository creates a new PracticeRepository.
func NewPracticeRepository(pool *pgxpool.Pool) *PracticeRepository {
	return &PracticeRepository{pool: pool}
}

// Create inserts a practice result.
func (r *PracticeRepository) Create(ctx context.Context, p *model.PracticeResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO practice_results (user_id, kind, wpm, accuracy, content, score, feedback)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.UserID, p.Kind, p.WPM, p.Accuracy, p.Content, p.Score, p.Feedback,
	).Scan(&p.ID, &p.CreatedAt)
}

// GetByID retrieves one practice result scoped to its owner.
func (r *PracticeRepository) GetByID(ctx context.Context, id, userID int) (*model.PracticeResult, error) {
	p := &model.PracticeResult{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, kind, wpm, accuracy, content, score, feedback, created_at
		 FROM practice_results WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&p.ID, &p.UserID, &p.Kind, &p.WPM, &p.Accuracy, &p.Content, &p.Score, &p.Feedback, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByUser returns a user's practice history, newest first.
func (r *PracticeRepository) ListByUser(ctx context.Context, userID, limit int) ([]model.PracticeResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, kind, wpm, accuracy, content, score, feedback, created_at
		 FROM practice_results
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.PracticeResult
	for rows.Next() {
		var p model.PracticeResult
		if err := rows.Scan(&p.ID, &p.UserID, &p.Kind, &p.WPM, &p.Accuracy, &p.Content, &p.Score, &p.Feedback, &p.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
