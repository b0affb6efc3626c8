package model

import (
	"time"

	"github.com/google/uuid"
)

// MCQSetSize is the fixed number of questions in a curated set.
const MCQSetSize = 10

// MCQSet is an admin-assembled, fixed list of questions served as a unit.
type MCQSet struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	IsActive  bool          `json:"is_active"`
	Questions []MCQQuestion `json:"questions,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// MCQQuestion is a single multiple-choice question within a set.
// CorrectIndex is never serialized to exam takers.
type MCQQuestion struct {
	ID           uuid.UUID `json:"id"`
	SetID        uuid.UUID `json:"set_id"`
	Question     string    `json:"question"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"-"`
}

// MCQReviewItem records how a single question was answered, for the
// post-exam review page.
type MCQReviewItem struct {
	QuestionID    uuid.UUID `json:"question_id"`
	SelectedIndex int       `json:"selected_index"`
	CorrectIndex  int       `json:"correct_index"`
	Correct       bool      `json:"correct"`
}

// SubmitMCQRequest is the payload for the MCQ final stage (new pattern).
// Answers maps question ID → selected option index.
type SubmitMCQRequest struct {
	SessionID string         `json:"session_id" binding:"required,min=8,max=64"`
	SetID     string         `json:"set_id" binding:"required,uuid"`
	Answers   map[string]int `json:"answers" binding:"required"`
}

// CreateMCQSetRequest is the admin payload for assembling a curated set.
type CreateMCQSetRequest struct {
	Name      string                     `json:"name" binding:"required,min=2,max=200"`
	Questions []CreateMCQQuestionRequest `json:"questions" binding:"required,len=10,dive"`
}

// CreateMCQQuestionRequest is one question inside a set creation payload.
type CreateMCQQuestionRequest struct {
	Question     string   `json:"question" binding:"required,min=5,max=2000"`
	Options      []string `json:"options" binding:"required,min=2,max=6,dive,required"`
	CorrectIndex int      `json:"correct_index" binding:"min=0"`
}

// ToggleMCQSetRequest activates or deactivates a curated set.
type ToggleMCQSetRequest struct {
	IsActive bool `json:"is_active"`
}
