package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/rs/zerolog"
)

// MCQService deals curated question sets to exam takers and manages the set
// pool for admins.
type MCQService struct {
	mcq   *repository.MCQRepository
	users *repository.UserRepository
	log   zerolog.Logger
}

// NewMCQService creates a new MCQService.
func NewMCQService(mcq *repository.MCQRepository, users *repository.UserRepository, log zerolog.Logger) *MCQService {
	return &MCQService{
		mcq:   mcq,
		users: users,
		log:   log.With().Str("component", "mcq-service").Logger(),
	}
}

// NextSet deals a random active set the user has not been served yet. When
// the user has exhausted every active set, the exclusion list resets and the
// rotation starts over. Correct answers never leave the server: the question
// type hides them from serialization.
func (s *MCQService) NextSet(ctx context.Context, userID int) (*model.MCQSet, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	exclude := user.CompletedMCQSets
	if exclude == nil {
		exclude = []uuid.UUID{}
	}

	set, err := s.mcq.RandomActiveSetExcluding(ctx, exclude)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("pick question set: %w", err)
	}

	// Nothing left outside the exclusion list. Either no set is live at
	// all, or the user has seen them all and the pool recycles.
	active, err := s.mcq.ListActiveSetIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active sets: %w", err)
	}
	if len(active) == 0 {
		return nil, ErrNoActiveSets
	}

	if err := s.users.ResetCompletedSets(ctx, userID); err != nil {
		return nil, fmt.Errorf("reset served sets: %w", err)
	}
	s.log.Info().Int("user_id", userID).Msg("set rotation exhausted, recycling pool")

	set, err = s.mcq.RandomActiveSetExcluding(ctx, []uuid.UUID{})
	if err != nil {
		return nil, fmt.Errorf("pick question set after reset: %w", err)
	}
	return set, nil
}

// CreateSet assembles a curated set from an admin payload. New sets start
// inactive.
func (s *MCQService) CreateSet(ctx context.Context, req *model.CreateMCQSetRequest) (*model.MCQSet, error) {
	set := &model.MCQSet{Name: req.Name}
	for _, q := range req.Questions {
		if q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("correct_index %d out of range for %d options", q.CorrectIndex, len(q.Options))
		}
		set.Questions = append(set.Questions, model.MCQQuestion{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}
	if err := s.mcq.CreateSet(ctx, set); err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}
	return set, nil
}

// ListSets returns every set, without questions.
func (s *MCQService) ListSets(ctx context.Context) ([]model.MCQSet, error) {
	return s.mcq.ListSets(ctx)
}

// GetSet returns one set with questions, correct answers included. Admin use
// only.
func (s *MCQService) GetSet(ctx context.Context, id uuid.UUID) (*model.MCQSet, error) {
	return s.mcq.GetSet(ctx, id)
}

// SetActive toggles whether a set is dealt to exam takers.
func (s *MCQService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.mcq.SetActive(ctx, id, active)
}

// DeleteSet removes a set and its questions.
func (s *MCQService) DeleteSet(ctx context.Context, id uuid.UUID) error {
	return s.mcq.DeleteSet(ctx, id)
}
