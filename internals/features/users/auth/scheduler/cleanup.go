package scheduler

import (
	"context"
	"time"

	helperAuth "certihub_backend/internals/helpers/auth"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StartBlacklistCleanupScheduler purges expired token_blacklist rows on
// schedule (default @daily).
func StartBlacklistCleanupScheduler(c *cron.Cron, revoker *helperAuth.DBRevoker, schedule string) error {
	if schedule == "" {
		schedule = "@daily"
	}
	_, err := c.AddFunc(schedule, func() {
		log.Info().Msg("[CLEANUP] purging token_blacklist...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := revoker.Cleanup(ctx)
		if err != nil {
			log.Error().Err(err).Msg("[CLEANUP ERROR] token_blacklist purge failed")
			return
		}
		log.Info().Msgf("[CLEANUP] %d expired tokens removed", n)
	})
	if err != nil {
		return err
	}
	log.Info().Msgf("[CLEANUP] token_blacklist cleanup scheduled %q", schedule)
	return nil
}
