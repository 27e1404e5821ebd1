package lobby

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ReapIdle deletes lobbies nobody has touched for idleTTL.
func (s *Service) ReapIdle(ctx context.Context, idleTTL time.Duration) (int, error) {
	n, err := s.store.Reap(ctx, s.now().Add(-idleTTL))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info().Int("lobbies", n).Dur("idleTTL", idleTTL).Msg("reaped idle lobbies")
	}
	return n, nil
}

// StartReaper runs ReapIdle on a cron schedule (e.g. "@every 1m").
// Stop the returned scheduler on shutdown.
func (s *Service) StartReaper(schedule string, idleTTL time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := s.ReapIdle(context.Background(), idleTTL); err != nil {
			log.Error().Err(err).Msg("reap idle lobbies")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reaper %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
