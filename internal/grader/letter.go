package grader

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// Letter rubric maxima.
const (
	letterTypographyMax   = 2
	letterSubjectMax      = 2
	letterContentMax      = 3
	letterLayoutMax       = 2
	letterPresentationMax = 1
	letterTotalMax        = 10
)

// Rich-editor markers checked by the deterministic typography rules.
const (
	fontFamilyMarker = "ql-font-"
	fontSizeMarker   = "ql-size-"
)

var (
	// A subject line counts as emphasized when it sits inside the marker,
	// allowing nested opening tags between the marker and the text.
	underlinedSubjectRe = regexp.MustCompile(`(?is)<u[^>]*>\s*(?:<[^>]+>\s*)*[^<]*subject`)
	boldSubjectRe       = regexp.MustCompile(`(?is)<(?:b|strong)[^>]*>\s*(?:<[^>]+>\s*)*[^<]*subject`)
)

// SubScore is one AI-graded rubric criterion.
type SubScore struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// LetterScores breaks a letter grade down per criterion.
type LetterScores struct {
	Typography       int      `json:"typography"`
	SubjectEmphasis  int      `json:"subject_emphasis"`
	ContentRelevance SubScore `json:"content_relevance"`
	LayoutStructure  SubScore `json:"layout_structure"`
	Presentation     SubScore `json:"presentation"`
}

// LetterGrade is the full result of grading one letter.
type LetterGrade struct {
	TotalScore int          `json:"total_score"`
	Feedback   string       `json:"feedback"`
	Scores     LetterScores `json:"scores"`
}

// letterReply is the wire shape of the model's grading reply.
type letterReply struct {
	ContentRelevance rawSubScore `json:"content_relevance"`
	LayoutStructure  rawSubScore `json:"layout_structure"`
	Presentation     rawSubScore `json:"presentation"`
}

// rawSubScore keeps the model's score as a float: replies are rounded and
// clamped before they are trusted.
type rawSubScore struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Orchestrator combines deterministic rubric checks with AI grading.
type Orchestrator struct {
	ai  AIClient
	log zerolog.Logger
}

// New creates a grading Orchestrator.
func New(ai AIClient, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		ai:  ai,
		log: log.With().Str("component", "grader").Logger(),
	}
}

// GradeLetter grades a submitted formal letter out of 10: four deterministic
// points (typography and subject emphasis) plus six AI-graded points. AI
// transport failure returns ErrGradingUnavailable; an unusable reply returns
// ErrGradingParse. Both are hard failures — the caller asks the user to
// resubmit.
func (o *Orchestrator) GradeLetter(ctx context.Context, content, questionText string) (*LetterGrade, error) {
	typography := 0
	if strings.Contains(content, fontFamilyMarker) {
		typography++
	}
	if strings.Contains(content, fontSizeMarker) {
		typography++
	}

	subjectEmphasis := 0
	if underlinedSubjectRe.MatchString(content) {
		subjectEmphasis++
	}
	if boldSubjectRe.MatchString(content) {
		subjectEmphasis++
	}

	prompt := buildLetterPrompt(questionText, content, typography, subjectEmphasis)

	raw, err := o.ai.Complete(ctx, prompt)
	if err != nil {
		o.log.Error().Err(err).Msg("letter grading call failed")
		return nil, fmt.Errorf("%w: %v", ErrGradingUnavailable, err)
	}

	var reply letterReply
	if err := decodeValidated("letter_grade", letterReplySchema, raw, &reply); err != nil {
		o.log.Error().Err(err).Str("raw", raw).Msg("letter grading reply unusable")
		return nil, fmt.Errorf("%w: %v", ErrGradingParse, err)
	}

	scores := LetterScores{
		Typography:       typography,
		SubjectEmphasis:  subjectEmphasis,
		ContentRelevance: clampSubScore(reply.ContentRelevance, letterContentMax),
		LayoutStructure:  clampSubScore(reply.LayoutStructure, letterLayoutMax),
		Presentation:     clampSubScore(reply.Presentation, letterPresentationMax),
	}

	total := typography + subjectEmphasis +
		scores.ContentRelevance.Score +
		scores.LayoutStructure.Score +
		scores.Presentation.Score
	if total > letterTotalMax {
		total = letterTotalMax
	}

	return &LetterGrade{
		TotalScore: total,
		Feedback:   buildLetterFeedback(scores),
		Scores:     scores,
	}, nil
}

// clampSubScore rounds a model-supplied score to the nearest integer and
// clamps it into [0, max]. Out-of-range and fractional scores are not trusted.
func clampSubScore(raw rawSubScore, max int) SubScore {
	score := int(math.Round(raw.Score))
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}
	return SubScore{Score: score, Explanation: raw.Explanation}
}

func buildLetterFeedback(s LetterScores) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Typography: %d/%d. Subject emphasis: %d/%d.\n",
		s.Typography, letterTypographyMax, s.SubjectEmphasis, letterSubjectMax)
	fmt.Fprintf(&sb, "Content (%d/%d): %s\n", s.ContentRelevance.Score, letterContentMax, s.ContentRelevance.Explanation)
	fmt.Fprintf(&sb, "Structure (%d/%d): %s\n", s.LayoutStructure.Score, letterLayoutMax, s.LayoutStructure.Explanation)
	fmt.Fprintf(&sb, "Presentation (%d/%d): %s", s.Presentation.Score, letterPresentationMax, s.Presentation.Explanation)
	return sb.String()
}
