package grader

import "errors"

// Grading failures. Unavailable and Parse are retryable by resubmission;
// MalformedAnswerKey is an operator/content problem the end user cannot fix.
var (
	ErrGradingUnavailable = errors.New("grading model unavailable")
	ErrGradingParse       = errors.New("grading reply not parseable")
	ErrMalformedAnswerKey = errors.New("answer key workbook is malformed")
)

// Analysis failures. Advisory only: none of these ever affect a score.
var (
	ErrInvalidAnalysisKind = errors.New("invalid analysis kind")
	ErrMissingContent      = errors.New("letter analysis requires letter content")
	ErrAnalysisParse       = errors.New("analysis reply not parseable")
)
