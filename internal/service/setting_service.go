package service

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
	"github.com/rs/zerolog"
)

// TypingParams holds the scoring knobs for one test pattern.
type TypingParams struct {
	TargetWPM float64
	MaxScore  int
}

// Built-in scoring defaults, used when the corresponding setting is absent
// or unparseable.
var defaultTypingParams = map[model.TestPattern]TypingParams{
	model.PatternStandard: {TargetWPM: 35, MaxScore: 20},
	model.PatternNew:      {TargetWPM: 40, MaxScore: 30},
}

// ComputeTypingScore converts raw words-per-minute into stage points:
// proportional to the target speed, rounded, and capped at the pattern
// maximum.
func ComputeTypingScore(wpm float64, params TypingParams) int {
	if params.TargetWPM <= 0 || params.MaxScore <= 0 {
		return 0
	}
	score := int(math.Round(wpm / params.TargetWPM * float64(params.MaxScore)))
	if score < 0 {
		score = 0
	}
	if score > params.MaxScore {
		score = params.MaxScore
	}
	return score
}

// SettingService handles global application settings and exposes typed
// accessors for the ones scoring depends on.
type SettingService struct {
	repo *repository.SettingRepository
	log  zerolog.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(repo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		repo: repo,
		log:  log.With().Str("component", "settings").Logger(),
	}
}

// GetAll returns every stored setting.
func (s *SettingService) GetAll(ctx context.Context) ([]model.AppSetting, error) {
	return s.repo.GetAll(ctx)
}

// Update upserts a batch of settings.
func (s *SettingService) Update(ctx context.Context, settings map[string]string) error {
	for key, value := range settings {
		if err := s.repo.Upsert(ctx, key, value); err != nil {
			return fmt.Errorf("upsert setting %q: %w", key, err)
		}
	}
	return nil
}

// TypingParamsFor resolves the typing target and cap for a pattern. Missing
// or malformed settings fall back to the built-in defaults so scoring never
// fails on a configuration problem.
func (s *SettingService) TypingParamsFor(ctx context.Context, pattern model.TestPattern) TypingParams {
	params := defaultTypingParams[model.PatternStandard]
	targetKey, capKey := model.SettingTypingTargetStandard, model.SettingTypingCapStandard
	if pattern == model.PatternNew {
		params = defaultTypingParams[model.PatternNew]
		targetKey, capKey = model.SettingTypingTargetNew, model.SettingTypingCapNew
	}

	if v, ok := s.floatSetting(ctx, targetKey); ok && v > 0 {
		params.TargetWPM = v
	}
	if v, ok := s.intSetting(ctx, capKey); ok && v > 0 {
		params.MaxScore = v
	}
	return params
}

func (s *SettingService) floatSetting(ctx context.Context, key string) (float64, bool) {
	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", setting.Value).Msg("setting is not a number, using default")
		return 0, false
	}
	return v, true
}

func (s *SettingService) intSetting(ctx context.Context, key string) (int, bool) {
	setting, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(setting.Value)
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", setting.Value).Msg("setting is not an integer, using default")
		return 0, false
	}
	return v, true
}
