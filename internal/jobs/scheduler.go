package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"apexfit/api/internal/repository"
)

// Scheduler runs periodic maintenance. Expired sessions are also
// rejected inline on refresh; the nightly purge just keeps the table
// from growing unbounded.
type Scheduler struct {
	cron     *cron.Cron
	sessions *repository.SessionRepository
	log      zerolog.Logger
}

func NewScheduler(sessions *repository.SessionRepository, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:     c,
		sessions: sessions,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if s.sessions == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 0 3 * * *", s.purgeExpiredSessions); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("expired session purge failed")
		return
	}
	if removed > 0 {
		s.log.Info().Int64("removed", removed).Msg("expired sessions purged")
	}
}
