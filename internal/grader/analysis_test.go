package grader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const analysisReply = `{"strengths":["steady rhythm"],"improvements":["number row"],"tips":["slow down on symbols"]}`

func TestAnalyzePerformance_Typing(t *testing.T) {
	mock := &MockClient{Replies: []string{analysisReply}}
	o := newTestOrchestrator(mock)

	report, err := o.AnalyzePerformance(context.Background(), AnalysisInput{
		Kind:      KindTyping,
		Score:     18,
		WPM:       42,
		Accuracy:  96.5,
		ErrorKeys: map[string]int{"e": 4, "a": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"steady rhythm"}, report.Strengths)

	// Per-key error history personalizes the prompt.
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "e: 4")
	assert.Contains(t, mock.Prompts[0], "a: 2")
}

func TestAnalyzePerformance_InvalidKind(t *testing.T) {
	o := newTestOrchestrator(&MockClient{})

	_, err := o.AnalyzePerformance(context.Background(), AnalysisInput{Kind: "calculus"})
	require.ErrorIs(t, err, ErrInvalidAnalysisKind)
}

func TestAnalyzePerformance_LetterRequiresContent(t *testing.T) {
	o := newTestOrchestrator(&MockClient{})

	_, err := o.AnalyzePerformance(context.Background(), AnalysisInput{Kind: KindLetter, Score: 7})
	require.ErrorIs(t, err, ErrMissingContent)
}

func TestAnalyzePerformance_UnparseableReply(t *testing.T) {
	mock := &MockClient{Replies: []string{"You did great, keep practicing!"}}
	o := newTestOrchestrator(mock)

	_, err := o.AnalyzePerformance(context.Background(), AnalysisInput{Kind: KindExcel, Score: 12})
	require.ErrorIs(t, err, ErrAnalysisParse)
}
