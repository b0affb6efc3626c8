package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/grader"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// mcqPointsPerQuestion is the fixed value of one correct MCQ answer.
const mcqPointsPerQuestion = 2

// SessionService runs the exam state machine. A session is created by its
// first stage submission, accumulates stage scores through upserts, and is
// finalized by the pattern's last stage. Writes against a completed session
// are rejected.
type SessionService struct {
	sessions  *repository.SessionRepository
	users     *repository.UserRepository
	questions *repository.QuestionRepository
	mcq       *repository.MCQRepository
	settings  *SettingService
	grader    *grader.Orchestrator
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessions *repository.SessionRepository,
	users *repository.UserRepository,
	questions *repository.QuestionRepository,
	mcq *repository.MCQRepository,
	settings *SettingService,
	gr *grader.Orchestrator,
	rdb *redis.Client,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions:  sessions,
		users:     users,
		questions: questions,
		mcq:       mcq,
		settings:  settings,
		grader:    gr,
		rdb:       rdb,
		log:       log.With().Str("component", "session-service").Logger(),
	}
}

// ensureWritable rejects stage writes against an already-completed session.
// A missing session is fine: the stage write will create it.
func (s *SessionService) ensureWritable(ctx context.Context, sessionID string, userID int) error {
	existing, err := s.sessions.GetBySessionAndUser(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("check session: %w", err)
	}
	if existing.Status == model.SessionCompleted {
		return ErrSessionCompleted
	}
	return nil
}

// SubmitTyping records the typing stage. The score is proportional to the
// pattern's target speed and capped at the pattern maximum.
func (s *SessionService) SubmitTyping(ctx context.Context, userID int, req *model.SubmitTypingRequest) (*model.ExamSession, error) {
	if err := s.ensureWritable(ctx, req.SessionID, userID); err != nil {
		return nil, err
	}

	pattern := model.TestPattern(req.TestPattern)
	params := s.settings.TypingParamsFor(ctx, pattern)
	score := ComputeTypingScore(req.WPM, params)

	session, err := s.sessions.UpsertTypingStage(ctx, req.SessionID, userID, pattern, req.WPM, req.Accuracy, score)
	if err != nil {
		return nil, fmt.Errorf("save typing stage: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", req.SessionID).
		Float64("wpm", req.WPM).
		Int("score", score).
		Msg("typing stage recorded")
	return session, nil
}

// SubmitLetter grades and records the letter stage. Grading failures abort
// the submission so the user can retry; nothing is persisted on failure.
func (s *SessionService) SubmitLetter(ctx context.Context, userID int, req *model.SubmitLetterRequest) (*model.ExamSession, error) {
	if err := s.ensureWritable(ctx, req.SessionID, userID); err != nil {
		return nil, err
	}

	questionID, err := uuid.Parse(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("parse question id: %w", err)
	}
	question, err := s.questions.GetLetterQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get letter question: %w", err)
	}

	grade, err := s.grader.GradeLetter(ctx, req.Content, question.Question)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.UpsertLetterStage(ctx, req.SessionID, userID, req.Content, grade.TotalScore, grade.Feedback)
	if err != nil {
		return nil, fmt.Errorf("save letter stage: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", req.SessionID).
		Int("score", grade.TotalScore).
		Msg("letter stage recorded")
	return session, nil
}

// SubmitExcel grades the uploaded workbook and finalizes a standard-pattern
// session. Grading hiccups degrade to a zero score inside the grader; only a
// malformed answer key aborts the submission.
func (s *SessionService) SubmitExcel(ctx context.Context, userID int, sessionID string, questionID uuid.UUID, filePath string) (*model.ExamSession, error) {
	if err := s.ensureWritable(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	question, err := s.questions.GetExcelQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get excel question: %w", err)
	}

	grade, err := s.grader.GradeExcel(ctx, filePath, question.SolutionFilePath, question.Name)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CompleteWithExcel(ctx, sessionID, userID, grade.Score, filePath, grade.Feedback)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", sessionID).
		Int("score", grade.Score).
		Int("total", session.TotalScore).
		Msg("session completed with excel stage")

	s.enqueueCompletionEmail(ctx, session)
	return session, nil
}

// SubmitMCQ grades the answered set against its stored correct indexes and
// finalizes a new-pattern session with a per-question review. The set is
// recorded as served so the rotation will not deal it to this user again.
func (s *SessionService) SubmitMCQ(ctx context.Context, userID int, req *model.SubmitMCQRequest) (*model.ExamSession, error) {
	if err := s.ensureWritable(ctx, req.SessionID, userID); err != nil {
		return nil, err
	}

	setID, err := uuid.Parse(req.SetID)
	if err != nil {
		return nil, fmt.Errorf("parse set id: %w", err)
	}
	set, err := s.mcq.GetSet(ctx, setID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSetMismatch
		}
		return nil, fmt.Errorf("get question set: %w", err)
	}

	score := 0
	review := make([]model.MCQReviewItem, 0, len(set.Questions))
	for _, q := range set.Questions {
		selected, answered := req.Answers[q.ID.String()]
		if !answered {
			selected = -1
		}
		correct := answered && selected == q.CorrectIndex
		if correct {
			score += mcqPointsPerQuestion
		}
		review = append(review, model.MCQReviewItem{
			QuestionID:    q.ID,
			SelectedIndex: selected,
			CorrectIndex:  q.CorrectIndex,
			Correct:       correct,
		})
	}

	session, err := s.sessions.CompleteWithMCQ(ctx, req.SessionID, userID, score, review)
	if err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	if err := s.users.AppendCompletedSet(ctx, userID, setID); err != nil {
		// Rotation bookkeeping only; the graded result already stands.
		s.log.Error().Err(err).Int("user_id", userID).Str("set_id", setID.String()).Msg("record served set failed")
	}

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", req.SessionID).
		Int("score", score).
		Int("total", session.TotalScore).
		Msg("session completed with mcq stage")

	s.enqueueCompletionEmail(ctx, session)
	return session, nil
}

// GetResult returns a session scoped to its owner.
func (s *SessionService) GetResult(ctx context.Context, sessionID string, userID int) (*model.ExamSession, error) {
	return s.sessions.GetBySessionAndUser(ctx, sessionID, userID)
}

// enqueueCompletionEmail pushes a result summary onto the outbound email
// queue. Delivery is best-effort; a queue failure never fails the exam.
func (s *SessionService) enqueueCompletionEmail(ctx context.Context, session *model.ExamSession) {
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		s.log.Error().Err(err).Int("user_id", session.UserID).Msg("lookup user for completion email failed")
		return
	}

	job := model.EmailJob{
		To:      user.Email,
		Subject: "Your exam result is ready",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour exam attempt %s has been graded.\nTotal score: %d/%d.\n\nLog in to review your detailed results.",
			user.Name, session.SessionID, session.TotalScore, session.MaxTotal()),
	}
	payload, err := json.Marshal(job)
	if err != nil {
		s.log.Error().Err(err).Msg("encode completion email failed")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.OutboundEmailQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("session_id", session.SessionID).Msg("enqueue completion email failed")
	}
}
