package main

import (
	"context"

	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/database"
	"github.com/mjaja25/exam-website-backend/internal/logger"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/mjaja25/exam-website-backend/internal/repository"
)

// seed-content loads a minimal question bank and the default scoring
// settings so a fresh deployment can serve exams immediately.

var passages = []model.Passage{
	{
		Title: "The Printing Press",
		Content: "The invention of the printing press in the fifteenth century transformed how " +
			"knowledge traveled across Europe. Books that once took months to copy by hand could " +
			"now be produced in days, and literacy spread beyond monasteries and courts into " +
			"ordinary households. Ideas moved faster than any ruler could contain them.",
	},
	{
		Title: "Monsoon Season",
		Content: "Every summer the monsoon arrives on the southwestern coast, carrying moisture " +
			"gathered over thousands of kilometres of open ocean. Farmers watch the sky for weeks " +
			"beforehand, because the timing of the first rain decides when fields are sown and " +
			"how full the reservoirs will stand by the end of the year.",
	},
}

var letterQuestions = []model.LetterQuestion{
	{Question: "Write a formal letter to your municipal office requesting repair of the street lights in your neighbourhood. Include a clear subject line."},
	{Question: "Write a formal letter to a newspaper editor about the shortage of public library facilities in your town. Include a clear subject line."},
}

var defaultSettings = map[string]string{
	model.SettingTypingTargetStandard: "35",
	model.SettingTypingCapStandard:    "20",
	model.SettingTypingTargetNew:      "40",
	model.SettingTypingCapNew:         "30",
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	for i := range passages {
		if err := questionRepo.CreatePassage(ctx, &passages[i]); err != nil {
			log.Fatal().Err(err).Str("title", passages[i].Title).Msg("Failed to seed passage")
		}
		log.Info().Str("title", passages[i].Title).Msg("Passage seeded")
	}

	for i := range letterQuestions {
		if err := questionRepo.CreateLetterQuestion(ctx, &letterQuestions[i]); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed letter question")
		}
		log.Info().Str("id", letterQuestions[i].ID.String()).Msg("Letter question seeded")
	}

	for key, value := range defaultSettings {
		if err := settingRepo.Upsert(ctx, key, value); err != nil {
			log.Fatal().Err(err).Str("key", key).Msg("Failed to seed setting")
		}
		log.Info().Str("key", key).Str("value", value).Msg("Setting seeded")
	}

	log.Info().Msg("Seed complete")
}
