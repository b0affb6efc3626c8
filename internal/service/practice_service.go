package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mjaja25/exam-website-backend/internal/grader"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/rs/zerolog"
)

// PracticeService records ungated practice attempts. Practice reuses the
// exam scoring rules but never touches leaderboards or exam sessions.
type PracticeService struct {
	practice  *repository.PracticeRepository
	sessions  *repository.SessionRepository
	questions *repository.QuestionRepository
	settings  *SettingService
	grader    *grader.Orchestrator
	log       zerolog.Logger
}

// NewPracticeService creates a new PracticeService. The session repository is
// read-only here: analysis can target exam results as well as practice runs.
func NewPracticeService(
	practice *repository.PracticeRepository,
	sessions *repository.SessionRepository,
	questions *repository.QuestionRepository,
	settings *SettingService,
	gr *grader.Orchestrator,
	log zerolog.Logger,
) *PracticeService {
	return &PracticeService{
		practice:  practice,
		sessions:  sessions,
		questions: questions,
		settings:  settings,
		grader:    gr,
		log:       log.With().Str("component", "practice-service").Logger(),
	}
}

// SubmitTyping scores a typing practice run with the standard-pattern rules
// and stores it as an independent result.
func (s *PracticeService) SubmitTyping(ctx context.Context, userID int, req *model.PracticeTypingRequest) (*model.PracticeResult, error) {
	params := s.settings.TypingParamsFor(ctx, model.PatternStandard)
	score := ComputeTypingScore(req.WPM, params)

	result := &model.PracticeResult{
		UserID:   userID,
		Kind:     model.PracticeTyping,
		WPM:      &req.WPM,
		Accuracy: &req.Accuracy,
		Score:    score,
	}
	if err := s.practice.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("save practice result: %w", err)
	}
	return result, nil
}

// SubmitLetter grades a letter practice attempt with the full exam rubric.
func (s *PracticeService) SubmitLetter(ctx context.Context, userID int, req *model.PracticeLetterRequest) (*model.PracticeResult, error) {
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

	result := &model.PracticeResult{
		UserID:   userID,
		Kind:     model.PracticeLetter,
		Content:  &req.Content,
		Score:    grade.TotalScore,
		Feedback: &grade.Feedback,
	}
	if err := s.practice.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("save practice result: %w", err)
	}
	return result, nil
}

// Get returns one practice result scoped to its owner.
func (s *PracticeService) Get(ctx context.Context, id, userID int) (*model.PracticeResult, error) {
	return s.practice.GetByID(ctx, id, userID)
}

// History returns the user's recent practice attempts, newest first.
func (s *PracticeService) History(ctx context.Context, userID, limit int) ([]model.PracticeResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.practice.ListByUser(ctx, userID, limit)
}

// Analyze produces coaching feedback for a graded result, loading the stage
// data from the exam session or practice attempt the request names.
func (s *PracticeService) Analyze(ctx context.Context, userID int, req *model.AnalysisRequest) (*grader.AnalysisReport, error) {
	input := grader.AnalysisInput{
		Kind:      grader.AnalysisKind(req.Kind),
		ErrorKeys: req.ErrorKeys,
	}

	switch {
	case req.PracticeID > 0:
		p, err := s.practice.GetByID(ctx, req.PracticeID, userID)
		if err != nil {
			return nil, err
		}
		input.Score = p.Score
		if p.WPM != nil {
			input.WPM = *p.WPM
		}
		if p.Accuracy != nil {
			input.Accuracy = *p.Accuracy
		}
		if p.Content != nil {
			input.LetterContent = *p.Content
		}
		if p.Feedback != nil {
			input.Feedback = *p.Feedback
		}

	case req.SessionID != "":
		sess, err := s.sessions.GetBySessionAndUser(ctx, req.SessionID, userID)
		if err != nil {
			return nil, err
		}
		switch input.Kind {
		case grader.KindTyping:
			if sess.TypingScore != nil {
				input.Score = *sess.TypingScore
			}
			if sess.WPM != nil {
				input.WPM = *sess.WPM
			}
			if sess.Accuracy != nil {
				input.Accuracy = *sess.Accuracy
			}
		case grader.KindLetter:
			if sess.LetterScore != nil {
				input.Score = *sess.LetterScore
			}
			if sess.LetterContent != nil {
				input.LetterContent = *sess.LetterContent
			}
			if sess.LetterFeedback != nil {
				input.Feedback = *sess.LetterFeedback
			}
		case grader.KindExcel:
			if sess.ExcelScore != nil {
				input.Score = *sess.ExcelScore
			}
			if sess.ExcelFeedback != nil {
				input.Feedback = *sess.ExcelFeedback
			}
		}

	default:
		return nil, ErrAnalysisSource
	}

	return s.grader.AnalyzePerformance(ctx, input)
}
