package model

import (
	"time"
)

// TestPattern selects which stages and rubric apply to an exam attempt.
type TestPattern string

const (
	// PatternStandard is typing → letter → excel.
	PatternStandard TestPattern = "standard"
	// PatternNew is typing → MCQ, with a 30-point typing cap.
	PatternNew TestPattern = "new_pattern"
)

// AttemptMode distinguishes ranked exam attempts from ungated practice.
type AttemptMode string

const (
	ModeExam     AttemptMode = "exam"
	ModePractice AttemptMode = "practice"
)

// SessionStatus enumerates exam session states. Transitions are one-way:
// IN_PROGRESS → COMPLETED, never reopened.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionCompleted  SessionStatus = "COMPLETED"
)

// ExamSession is a single exam attempt. It is created by the first stage
// submission for a (session_id, user) pair and accumulates stage scores
// until the final stage completes it.
type ExamSession struct {
	ID          int           `json:"id"`
	SessionID   string        `json:"session_id"`
	UserID      int           `json:"user_id"`
	TestPattern TestPattern   `json:"test_pattern"`
	AttemptMode AttemptMode   `json:"attempt_mode"`
	Status      SessionStatus `json:"status"`

	WPM         *float64 `json:"wpm,omitempty"`
	Accuracy    *float64 `json:"accuracy,omitempty"`
	TypingScore *int     `json:"typing_score,omitempty"`

	LetterContent  *string `json:"letter_content,omitempty"`
	LetterScore    *int    `json:"letter_score,omitempty"`
	LetterFeedback *string `json:"letter_feedback,omitempty"`

	ExcelScore    *int    `json:"excel_score,omitempty"`
	ExcelFilePath *string `json:"excel_file_path,omitempty"`
	ExcelFeedback *string `json:"excel_feedback,omitempty"`

	MCQScore  *int            `json:"mcq_score,omitempty"`
	MCQReview []MCQReviewItem `json:"mcq_review,omitempty"`

	TotalScore  int        `json:"total_score"`
	SubmittedAt time.Time  `json:"submitted_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// MaxTotal returns the maximum attainable total score for the session's pattern.
func (s *ExamSession) MaxTotal() int {
	if s.TestPattern == PatternNew {
		return 50 // typing 30 + mcq 20
	}
	return 50 // typing 20 + letter 10 + excel 20
}

// SubmitTypingRequest is the payload for the typing stage.
type SubmitTypingRequest struct {
	SessionID   string  `json:"session_id" binding:"required,min=8,max=64"`
	TestPattern string  `json:"test_pattern" binding:"required,oneof=standard new_pattern"`
	WPM         float64 `json:"wpm" binding:"min=0,max=400"`
	Accuracy    float64 `json:"accuracy" binding:"min=0,max=100"`
}

// SubmitLetterRequest is the payload for the letter stage.
type SubmitLetterRequest struct {
	SessionID  string `json:"session_id" binding:"required,min=8,max=64"`
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,min=1,max=50000"`
}
