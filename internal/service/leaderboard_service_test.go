package service

import (
	"testing"

	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePercentile(t *testing.T) {
	cases := []struct {
		name  string
		rank  int
		total int
		want  int
	}{
		{"top of a hundred", 1, 100, 1},
		{"middle", 50, 100, 50},
		{"last place", 100, 100, 100},
		{"rounds up", 1, 3, 33},  // 33.33
		{"rounds half", 1, 2, 50},
		{"sole participant", 1, 1, 100},
		{"no participants", 1, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, computePercentile(tc.rank, tc.total))
		})
	}
}

func intp(v int) *int { return &v }

func TestBuildGaps_StandardPattern(t *testing.T) {
	mine := &model.ExamSession{
		TestPattern: model.PatternStandard,
		TypingScore: intp(15),
		LetterScore: intp(8),
		ExcelScore:  intp(10),
		TotalScore:  33,
	}
	them := &model.ExamSession{
		TestPattern: model.PatternStandard,
		TypingScore: intp(18),
		LetterScore: intp(6),
		ExcelScore:  intp(16),
		TotalScore:  40,
	}

	gaps := buildGaps(mine, them)
	require.Len(t, gaps, 4)

	assert.Equal(t, "typing", gaps[0].Category)
	assert.Equal(t, -3, gaps[0].Diff)
	assert.False(t, gaps[0].Ahead)
	assert.NotEmpty(t, gaps[0].Tip, "trailing categories carry a tip")

	assert.Equal(t, "letter", gaps[1].Category)
	assert.True(t, gaps[1].Ahead)
	assert.Empty(t, gaps[1].Tip, "leading categories carry no tip")

	assert.Equal(t, "total", gaps[3].Category)
	assert.Equal(t, -7, gaps[3].Diff)
}

func TestBuildGaps_NewPattern(t *testing.T) {
	mine := &model.ExamSession{
		TestPattern: model.PatternNew,
		TypingScore: intp(25),
		MCQScore:    intp(14),
		TotalScore:  39,
	}
	them := &model.ExamSession{
		TestPattern: model.PatternNew,
		TypingScore: intp(25),
		MCQScore:    intp(18),
		TotalScore:  43,
	}

	gaps := buildGaps(mine, them)
	require.Len(t, gaps, 3)
	assert.Equal(t, "typing", gaps[0].Category)
	assert.True(t, gaps[0].Ahead, "equal scores count as ahead")
	assert.Equal(t, "mcq", gaps[1].Category)
	assert.Equal(t, "total", gaps[2].Category)
}

func TestBuildGaps_MissingStageTreatedAsZero(t *testing.T) {
	mine := &model.ExamSession{
		TestPattern: model.PatternStandard,
		TypingScore: intp(12),
		TotalScore:  12,
	}
	them := &model.ExamSession{
		TestPattern: model.PatternStandard,
		TypingScore: intp(10),
		LetterScore: intp(7),
		TotalScore:  17,
	}

	gaps := buildGaps(mine, them)
	require.Len(t, gaps, 4)
	assert.Equal(t, 0, gaps[1].Yours)
	assert.Equal(t, 7, gaps[1].Theirs)
}
