package model

import "time"

// PracticeKind identifies which stage a practice attempt exercised.
type PracticeKind string

const (
	PracticeTyping PracticeKind = "typing"
	PracticeLetter PracticeKind = "letter"
)

// PracticeResult is one complete, independent practice attempt. Unlike
// ExamSession there is no in-progress state and no ranking eligibility.
type PracticeResult struct {
	ID        int          `json:"id"`
	UserID    int          `json:"user_id"`
	Kind      PracticeKind `json:"kind"`
	WPM       *float64     `json:"wpm,omitempty"`
	Accuracy  *float64     `json:"accuracy,omitempty"`
	Content   *string      `json:"content,omitempty"`
	Score     int          `json:"score"`
	Feedback  *string      `json:"feedback,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// PracticeTypingRequest is the payload for a typing practice attempt.
// ErrorKeys carries per-key mistype counts for personalized analysis.
type PracticeTypingRequest struct {
	WPM       float64        `json:"wpm" binding:"min=0,max=400"`
	Accuracy  float64        `json:"accuracy" binding:"min=0,max=100"`
	ErrorKeys map[string]int `json:"error_keys" binding:"omitempty"`
}

// PracticeLetterRequest is the payload for a letter practice attempt.
type PracticeLetterRequest struct {
	QuestionID string `json:"question_id" binding:"required,uuid"`
	Content    string `json:"content" binding:"required,min=1,max=50000"`
}
