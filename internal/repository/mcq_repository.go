package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// MCQRepository handles curated MCQ sets and their questions.
type MCQRepository struct {
	pool *pgxpool.Pool
}

// NewMCQRepository creates a new MCQRepository.
func NewMCQRepository(pool *pgxpool.Pool) *MCQRepository {
	return &MCQRepository{pool: pool}
}

// CreateSet inserts a curated set together with its questions in one
// transaction. The set is created inactive; an admin toggles it live.
func (r *MCQRepository) CreateSet(ctx context.Context, set *model.MCQSet) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO mcq_sets (name, is_active) VALUES ($1, false)
		 RETURNING id, created_at`,
		set.Name,
	).Scan(&set.ID, &set.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert set: %w", err)
	}

	for i := range set.Questions {
		q := &set.Questions[i]
		q.SetID = set.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO mcq_questions (set_id, question, options, correct_index)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			q.SetID, q.Question, q.Options, q.CorrectIndex,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

// GetSet retrieves a set with its questions (correct answers included —
// callers decide what to expose).
func (r *MCQRepository) GetSet(ctx context.Context, id uuid.UUID) (*model.MCQSet, error) {
	set := &model.MCQSet{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, is_active, created_at FROM mcq_sets WHERE id = $1`, id,
	).Scan(&set.ID, &set.Name, &set.IsActive, &set.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, set_id, question, options, correct_index
		 FROM mcq_questions WHERE set_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q model.MCQQuestion
		if err := rows.Scan(&q.ID, &q.SetID, &q.Question, &q.Options, &q.CorrectIndex); err != nil {
			return nil, err
		}
		set.Questions = append(set.Questions, q)
	}
	return set, rows.Err()
}

// ListSets retrieves all sets without questions, newest first.
func (r *MCQRepository) ListSets(ctx context.Context) ([]model.MCQSet, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, is_active, created_at FROM mcq_sets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []model.MCQSet
	for rows.Next() {
		var s model.MCQSet
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// ListActiveSetIDs returns the IDs of every active set.
func (r *MCQRepository) ListActiveSetIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM mcq_sets WHERE is_active = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RandomActiveSetExcluding picks one active set the user has not been served
// yet. Returns pgx.ErrNoRows when every active set is excluded.
func (r *MCQRepository) RandomActiveSetExcluding(ctx context.Context, exclude []uuid.UUID) (*model.MCQSet, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM mcq_sets
		 WHERE is_active = true AND NOT (id = ANY($1))
		 ORDER BY random() LIMIT 1`,
		exclude,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetSet(ctx, id)
}

// SetActive toggles a set's availability for serving.
func (r *MCQRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE mcq_sets SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteSet removes a set and (via FK cascade) its questions.
func (r *MCQRepository) DeleteSet(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM mcq_sets WHERE id = $1`, id)
	return err
}
