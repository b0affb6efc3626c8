package model

// AnalysisRequest asks for coaching feedback on an already-graded result,
// referenced either by exam session or by practice attempt. ErrorKeys carries
// per-key mistype counts the client tracked during a typing run; they are not
// persisted server-side.
type AnalysisRequest struct {
	Kind       string         `json:"kind" binding:"required,oneof=typing letter excel"`
	SessionID  string         `json:"session_id" binding:"omitempty,min=8,max=64"`
	PracticeID int            `json:"practice_id" binding:"omitempty,min=1"`
	ErrorKeys  map[string]int `json:"error_keys" binding:"omitempty"`
}
