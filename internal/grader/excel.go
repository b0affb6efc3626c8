package grader

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

const excelScoreMax = 20

// maxSheetRows caps how much of a worksheet is serialized into the prompt.
const maxSheetRows = 100

// excelFailedFeedback is returned when grading degrades. The submission and
// the session's progression are preserved; only the points are lost.
const excelFailedFeedback = "Automatic grading failed for this submission. " +
	"A score of 0 has been recorded; please contact an administrator to have it reviewed."

// ExcelGrade is the result of grading a spreadsheet submission.
type ExcelGrade struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// excelReply is the wire shape of the model's grading reply.
type excelReply struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// GradeExcel grades an uploaded workbook against an answer key out of 20.
// The key's first worksheet holds the expected data and its second a
// human-readable rubric; missing sheets fail with ErrMalformedAnswerKey
// (an operator problem). Grading-side failures — an unreadable submission,
// a dead model, an unusable reply — degrade to a zero score with explanatory
// feedback instead of erroring: the upload represents real user effort that
// must not be lost to a grading hiccup.
func (o *Orchestrator) GradeExcel(ctx context.Context, userFilePath, solutionFilePath, questionName string) (*ExcelGrade, error) {
	expected, rubric, err := readAnswerKey(solutionFilePath)
	if err != nil {
		o.log.Error().Err(err).Str("path", solutionFilePath).Msg("answer key unusable")
		return nil, fmt.Errorf("%w: %v", ErrMalformedAnswerKey, err)
	}

	submitted, err := readFirstSheet(userFilePath)
	if err != nil {
		o.log.Warn().Err(err).Str("path", userFilePath).Msg("submitted workbook unreadable, degrading")
		return &ExcelGrade{Score: 0, Feedback: excelFailedFeedback}, nil
	}

	prompt := buildExcelPrompt(questionName, expected, rubric, submitted)

	raw, err := o.ai.Complete(ctx, prompt)
	if err != nil {
		o.log.Error().Err(err).Msg("excel grading call failed, degrading")
		return &ExcelGrade{Score: 0, Feedback: excelFailedFeedback}, nil
	}

	var reply excelReply
	if err := decodeValidated("excel_grade", excelReplySchema, raw, &reply); err != nil {
		o.log.Error().Err(err).Str("raw", raw).Msg("excel grading reply unusable, degrading")
		return &ExcelGrade{Score: 0, Feedback: excelFailedFeedback}, nil
	}

	score := int(math.Round(reply.Score))
	if score < 0 {
		score = 0
	}
	if score > excelScoreMax {
		score = excelScoreMax
	}

	return &ExcelGrade{Score: score, Feedback: reply.Feedback}, nil
}

// readAnswerKey opens the solution workbook and serializes its first two
// worksheets (expected data, rubric).
func readAnswerKey(path string) (expected, rubric string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", "", fmt.Errorf("open answer key: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 2 {
		return "", "", fmt.Errorf("answer key has %d worksheets, need expected data and rubric", len(sheets))
	}

	expected, err = sheetToText(f, sheets[0])
	if err != nil {
		return "", "", fmt.Errorf("read expected sheet: %w", err)
	}
	rubric, err = sheetToText(f, sheets[1])
	if err != nil {
		return "", "", fmt.Errorf("read rubric sheet: %w", err)
	}
	return expected, rubric, nil
}

// readFirstSheet opens a workbook and serializes its first worksheet.
func readFirstSheet(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no worksheets")
	}
	return sheetToText(f, sheets[0])
}

// sheetToText flattens a worksheet into pipe-separated rows for prompting.
func sheetToText(f *excelize.File, sheet string) (string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("get rows: %w", err)
	}
	if len(rows) > maxSheetRows {
		rows = rows[:maxSheetRows]
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
