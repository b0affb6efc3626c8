package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mjaja25/exam-website-backend/internal/model"
)

// UserRepository handles user account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a new user account.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, completed_mcq_sets, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CompletedMCQSets, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by primary key.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, role, completed_mcq_sets, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CompletedMCQSets, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// AppendCompletedSet records that a curated MCQ set has been served to the user.
func (r *UserRepository) AppendCompletedSet(ctx context.Context, userID int, setID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET completed_mcq_sets = array_append(completed_mcq_sets, $2)
		 WHERE id = $1 AND NOT ($2 = ANY(completed_mcq_sets))`,
		userID, setID)
	return err
}

// ResetCompletedSets clears the user's served-set exclusion list. Called when
// the user has exhausted every active set and the pool recycles.
func (r *UserRepository) ResetCompletedSets(ctx context.Context, userID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET completed_mcq_sets = '{}' WHERE id = $1`, userID)
	return err
}
