package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mjaja25/exam-website-backend/internal/config"
	"github.com/mjaja25/exam-website-backend/internal/mailer"
	"github.com/mjaja25/exam-website-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// popTimeout bounds each blocking pop so the worker notices shutdown.
const popTimeout = 5 * time.Second

// EmailWorker drains the outbound email queue and delivers each job.
// Delivery is at-most-once: a failed send is logged and dropped, never
// retried, because result emails are a courtesy and not a record.
type EmailWorker struct {
	rdb    *redis.Client
	mailer mailer.Mailer
	log    zerolog.Logger
}

// NewEmailWorker creates an EmailWorker.
func NewEmailWorker(rdb *redis.Client, m mailer.Mailer, log zerolog.Logger) *EmailWorker {
	return &EmailWorker{
		rdb:    rdb,
		mailer: m,
		log:    log.With().Str("component", "email-worker").Logger(),
	}
}

// Start runs the drain loop until the context is canceled.
func (w *EmailWorker) Start(ctx context.Context) {
	w.log.Info().Msg("email worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("email worker stopped")
			return
		default:
		}

		res, err := w.rdb.BLPop(ctx, popTimeout, config.WorkerKey.OutboundEmailQueue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			w.log.Error().Err(err).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		// BLPop returns [key, value].
		if len(res) < 2 {
			continue
		}

		var job model.EmailJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			w.log.Error().Err(err).Str("payload", res[1]).Msg("discarding malformed email job")
			continue
		}

		if err := w.mailer.Send(job); err != nil {
			w.log.Error().Err(err).Str("to", job.To).Msg("email delivery failed")
			continue
		}
		w.log.Info().Str("to", job.To).Str("subject", job.Subject).Msg("email delivered")
	}
}
