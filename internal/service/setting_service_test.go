package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTypingScore(t *testing.T) {
	standard := TypingParams{TargetWPM: 35, MaxScore: 20}
	newPattern := TypingParams{TargetWPM: 40, MaxScore: 30}

	cases := []struct {
		name   string
		wpm    float64
		params TypingParams
		want   int
	}{
		{"zero wpm", 0, standard, 0},
		{"at target hits the cap", 35, standard, 20},
		{"above target stays capped", 90, standard, 20},
		{"half target rounds", 17.5, standard, 10},
		{"rounds to nearest", 30, standard, 17},    // 30/35*20 = 17.14
		{"new pattern cap", 55, newPattern, 30},
		{"new pattern partial", 20, newPattern, 15}, // 20/40*30 = 15
		{"zero target yields zero", 50, TypingParams{TargetWPM: 0, MaxScore: 20}, 0},
		{"zero cap yields zero", 50, TypingParams{TargetWPM: 35, MaxScore: 0}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeTypingScore(tc.wpm, tc.params))
		})
	}
}
