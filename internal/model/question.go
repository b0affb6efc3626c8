package model

import (
	"time"

	"github.com/google/uuid"
)

// Passage is a typing-test text served to users.
type Passage struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LetterQuestion is a formal-letter writing prompt.
type LetterQuestion struct {
	ID        uuid.UUID `json:"id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

// ExcelQuestion is a spreadsheet task. SolutionFilePath points at the
// admin-uploaded answer key workbook: sheet 1 holds the expected data,
// sheet 2 the human-readable rubric.
type ExcelQuestion struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Question         string    `json:"question"`
	SolutionFilePath string    `json:"solution_file_path"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreatePassageRequest is the admin payload for authoring a typing passage.
type CreatePassageRequest struct {
	Title   string `json:"title" binding:"required,min=2,max=200"`
	Content string `json:"content" binding:"required,min=50,max=10000"`
}

// CreateLetterQuestionRequest is the admin payload for a letter prompt.
type CreateLetterQuestionRequest struct {
	Question string `json:"question" binding:"required,min=10,max=5000"`
}

// CreateExcelQuestionRequest is the admin payload for a spreadsheet task.
// The answer key workbook is uploaded separately as multipart form data.
type CreateExcelQuestionRequest struct {
	Name     string `form:"name" binding:"required,min=2,max=200"`
	Question string `form:"question" binding:"required,min=10,max=5000"`
}
