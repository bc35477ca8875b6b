// Package janitor removes stale pending signups. An unverified account
// whose verification token expired long ago will never activate; left
// alone it would squat its email address forever.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/RusilKoirala/rusil-stream/internal/repository"
	"github.com/robfig/cron/v3"
)

const (
	purgeSchedule = "@hourly"
	// purgeGrace keeps just-expired signups around long enough for the
	// user to re-request a verification email.
	purgeGrace   = 24 * time.Hour
	purgeTimeout = 30 * time.Second
)

type Janitor struct {
	accounts repository.AccountRepository
	logger   *slog.Logger
	cron     *cron.Cron
}

func New(accounts repository.AccountRepository, logger *slog.Logger) *Janitor {
	return &Janitor{
		accounts: accounts,
		logger:   logger.With("component", "janitor"),
		cron:     cron.New(),
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(purgeSchedule, j.purge); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("janitor started", "schedule", purgeSchedule)
	return nil
}

// Stop waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("janitor stopped")
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	cutoff := time.Now().Add(-purgeGrace)
	removed, err := j.accounts.DeleteExpiredUnverified(ctx, cutoff)
	if err != nil {
		j.logger.Error("purge expired signups", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("purged expired signups", "count", removed)
	}
}
