package service

import "errors"

// Domain errors surfaced by services and translated into HTTP error codes by
// handlers.
var (
	// ErrSessionCompleted rejects any stage write against a session that has
	// already been finalized. Completed sessions are immutable.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrNoActiveSets means no curated MCQ set is live to serve.
	ErrNoActiveSets = errors.New("no active question sets")

	// ErrSetMismatch means an MCQ submission referenced a set that is not
	// the one being graded against (unknown or inactive set).
	ErrSetMismatch = errors.New("unknown question set")

	// ErrAnalysisSource means an analysis request named neither a session
	// nor a practice attempt to analyze.
	ErrAnalysisSource = errors.New("analysis needs a session_id or practice_id")
)
