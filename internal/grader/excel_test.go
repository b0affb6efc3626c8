package grader

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an .xlsx with the given sheets, each holding one
// header row.
func writeWorkbook(t *testing.T, dir, name string, sheets ...string) string {
	t.Helper()

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Item", "Qty", "Total"}))
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestGradeExcel_HappyPath(t *testing.T) {
	dir := t.TempDir()
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected", "Rubric")
	submission := writeWorkbook(t, dir, "submission.xlsx", "Sheet1")

	mock := &MockClient{Replies: []string{`{"score": 15, "feedback": "1. Good\n2. OK"}`}}
	o := newTestOrchestrator(mock)

	grade, err := o.GradeExcel(context.Background(), submission, solution, "Inventory task")
	require.NoError(t, err)
	assert.Equal(t, 15, grade.Score)
	assert.Equal(t, "1. Good\n2. OK", grade.Feedback)
}

func TestGradeExcel_ClampsScore(t *testing.T) {
	dir := t.TempDir()
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected", "Rubric")
	submission := writeWorkbook(t, dir, "submission.xlsx", "Sheet1")

	mock := &MockClient{Replies: []string{`{"score": 73.4, "feedback": "generous"}`}}
	o := newTestOrchestrator(mock)

	grade, err := o.GradeExcel(context.Background(), submission, solution, "q")
	require.NoError(t, err)
	assert.Equal(t, 20, grade.Score)
}

func TestGradeExcel_UnparseableReplyDegrades(t *testing.T) {
	dir := t.TempDir()
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected", "Rubric")
	submission := writeWorkbook(t, dir, "submission.xlsx", "Sheet1")

	mock := &MockClient{Replies: []string{"Looks like a solid 15 to me!"}}
	o := newTestOrchestrator(mock)

	grade, err := o.GradeExcel(context.Background(), submission, solution, "q")
	require.NoError(t, err, "unparseable reply must degrade, never error")
	assert.Equal(t, 0, grade.Score)
	assert.True(t, strings.Contains(strings.ToLower(grade.Feedback), "failed"))
}

func TestGradeExcel_TransportErrorDegrades(t *testing.T) {
	dir := t.TempDir()
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected", "Rubric")
	submission := writeWorkbook(t, dir, "submission.xlsx", "Sheet1")

	mock := &MockClient{Err: errors.New("timeout")}
	o := newTestOrchestrator(mock)

	grade, err := o.GradeExcel(context.Background(), submission, solution, "q")
	require.NoError(t, err)
	assert.Equal(t, 0, grade.Score)
}

func TestGradeExcel_MissingRubricSheetIsFatal(t *testing.T) {
	dir := t.TempDir()
	// Answer key with only one worksheet: an operator/content problem.
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected")
	submission := writeWorkbook(t, dir, "submission.xlsx", "Sheet1")

	mock := &MockClient{Replies: []string{`{"score": 10, "feedback": "n/a"}`}}
	o := newTestOrchestrator(mock)

	_, err := o.GradeExcel(context.Background(), submission, solution, "q")
	require.ErrorIs(t, err, ErrMalformedAnswerKey)
	assert.Empty(t, mock.Prompts, "no AI call should be made for a malformed key")
}

func TestGradeExcel_UnreadableSubmissionDegrades(t *testing.T) {
	dir := t.TempDir()
	solution := writeWorkbook(t, dir, "solution.xlsx", "Expected", "Rubric")

	mock := &MockClient{Replies: []string{`{"score": 10, "feedback": "n/a"}`}}
	o := newTestOrchestrator(mock)

	grade, err := o.GradeExcel(context.Background(), filepath.Join(dir, "missing.xlsx"), solution, "q")
	require.NoError(t, err)
	assert.Equal(t, 0, grade.Score)
}
