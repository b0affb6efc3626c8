package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ContentService manages the question banks: typing passages, letter
// prompts, and spreadsheet tasks with their answer keys.
type ContentService struct {
	questions *repository.QuestionRepository
	uploads   *UploadService
	log       zerolog.Logger
}

// NewContentService creates a new ContentService.
func NewContentService(questions *repository.QuestionRepository, uploads *UploadService, log zerolog.Logger) *ContentService {
	return &ContentService{
		questions: questions,
		uploads:   uploads,
		log:       log.With().Str("component", "content-service").Logger(),
	}
}

// RandomPassage serves a typing passage for a test.
func (s *ContentService) RandomPassage(ctx context.Context) (*model.Passage, error) {
	return s.questions.RandomPassage(ctx)
}

// RandomLetterQuestion serves a letter prompt for a test.
func (s *ContentService) RandomLetterQuestion(ctx context.Context) (*model.LetterQuestion, error) {
	return s.questions.RandomLetterQuestion(ctx)
}

// RandomExcelQuestion serves a spreadsheet task for a test. The answer key
// path is stripped before the question reaches the client.
func (s *ContentService) RandomExcelQuestion(ctx context.Context) (*model.ExcelQuestion, error) {
	q, err := s.questions.RandomExcelQuestion(ctx)
	if err != nil {
		return nil, err
	}
	q.SolutionFilePath = ""
	return q, nil
}

// GetExcelQuestion returns a spreadsheet task with its answer key path.
// Admin and grading use only.
func (s *ContentService) GetExcelQuestion(ctx context.Context, id uuid.UUID) (*model.ExcelQuestion, error) {
	return s.questions.GetExcelQuestion(ctx, id)
}

// CreatePassage authors a typing passage.
func (s *ContentService) CreatePassage(ctx context.Context, req *model.CreatePassageRequest) (*model.Passage, error) {
	p := &model.Passage{Title: req.Title, Content: req.Content}
	if err := s.questions.CreatePassage(ctx, p); err != nil {
		return nil, fmt.Errorf("create passage: %w", err)
	}
	return p, nil
}

// ListPassages returns every passage, newest first.
func (s *ContentService) ListPassages(ctx context.Context) ([]model.Passage, error) {
	return s.questions.ListPassages(ctx)
}

// DeletePassage removes a passage.
func (s *ContentService) DeletePassage(ctx context.Context, id uuid.UUID) error {
	return s.questions.DeletePassage(ctx, id)
}

// CreateLetterQuestion authors a letter prompt.
func (s *ContentService) CreateLetterQuestion(ctx context.Context, req *model.CreateLetterQuestionRequest) (*model.LetterQuestion, error) {
	q := &model.LetterQuestion{Question: req.Question}
	if err := s.questions.CreateLetterQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("create letter question: %w", err)
	}
	return q, nil
}

// ListLetterQuestions returns every letter prompt, newest first.
func (s *ContentService) ListLetterQuestions(ctx context.Context) ([]model.LetterQuestion, error) {
	return s.questions.ListLetterQuestions(ctx)
}

// DeleteLetterQuestion removes a letter prompt.
func (s *ContentService) DeleteLetterQuestion(ctx context.Context, id uuid.UUID) error {
	return s.questions.DeleteLetterQuestion(ctx, id)
}

// CreateExcelQuestion authors a spreadsheet task. The answer key workbook is
// stored first; the question row is only created once the upload succeeded.
func (s *ContentService) CreateExcelQuestion(ctx context.Context, req *model.CreateExcelQuestionRequest, key *multipart.FileHeader) (*model.ExcelQuestion, error) {
	path, err := s.uploads.SaveWorkbook(key)
	if err != nil {
		return nil, err
	}

	q := &model.ExcelQuestion{Name: req.Name, Question: req.Question, SolutionFilePath: path}
	if err := s.questions.CreateExcelQuestion(ctx, q); err != nil {
		if rmErr := s.uploads.Remove(path); rmErr != nil {
			s.log.Error().Err(rmErr).Str("path", path).Msg("orphaned answer key cleanup failed")
		}
		return nil, fmt.Errorf("create excel question: %w", err)
	}
	return q, nil
}

// ListExcelQuestions returns every spreadsheet task, newest first.
func (s *ContentService) ListExcelQuestions(ctx context.Context) ([]model.ExcelQuestion, error) {
	return s.questions.ListExcelQuestions(ctx)
}

// DeleteExcelQuestion removes a spreadsheet task and its stored answer key.
func (s *ContentService) DeleteExcelQuestion(ctx context.Context, id uuid.UUID) error {
	q, err := s.questions.GetExcelQuestion(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questions.DeleteExcelQuestion(ctx, id); err != nil {
		return err
	}
	if err := s.uploads.Remove(q.SolutionFilePath); err != nil {
		s.log.Error().Err(err).Str("path", q.SolutionFilePath).Msg("answer key cleanup failed")
	}
	return nil
}
