package grader

import (
	"context"
	"fmt"
)

// AnalysisKind selects which stage a coaching analysis targets.
type AnalysisKind string

const (
	KindTyping AnalysisKind = "typing"
	KindLetter AnalysisKind = "letter"
	KindExcel  AnalysisKind = "excel"
)

// AnalysisInput carries the already-computed stage result the analysis is
// built on. ErrorKeys personalizes typing advice; LetterContent is required
// for letter analysis.
type AnalysisInput struct {
	Kind          AnalysisKind
	Score         int
	Feedback      string
	WPM           float64
	Accuracy      float64
	ErrorKeys     map[string]int
	LetterContent string
}

// AnalysisReport is advisory coaching feedback. It never affects a score.
type AnalysisReport struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Tips         []string `json:"tips"`
}

// AnalyzePerformance produces strengths/improvements/tips coaching for a
// completed stage. Failures here are standalone: the caller surfaces
// "analysis unavailable" without touching any score.
func (o *Orchestrator) AnalyzePerformance(ctx context.Context, in AnalysisInput) (*AnalysisReport, error) {
	switch in.Kind {
	case KindTyping, KindLetter, KindExcel:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAnalysisKind, in.Kind)
	}
	if in.Kind == KindLetter && in.LetterContent == "" {
		return nil, ErrMissingContent
	}

	raw, err := o.ai.Complete(ctx, buildAnalysisPrompt(in))
	if err != nil {
		o.log.Error().Err(err).Str("kind", string(in.Kind)).Msg("analysis call failed")
		return nil, fmt.Errorf("%w: %v", ErrGradingUnavailable, err)
	}

	var report AnalysisReport
	if err := decodeValidated("analysis", analysisReplySchema, raw, &report); err != nil {
		o.log.Error().Err(err).Str("raw", raw).Msg("analysis reply unusable")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisParse, err)
	}
	return &report, nil
}
