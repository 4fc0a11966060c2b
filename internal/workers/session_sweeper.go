package workers

import (
	"context"
	"time"

	"github.com/corepay/identity-service/internal/logger"
	"github.com/corepay/identity-service/internal/store"
)

// defaultSweepInterval is used when the sweeper is constructed with a
// non-positive interval.
const defaultSweepInterval = time.Hour

// SessionSweeper periodically removes session rows whose expiry has passed.
// Expired sessions are already unusable for refresh; the sweeper only keeps
// the sessions table from growing without bound.
type SessionSweeper struct {
	sessionRepository store.SessionRepository
	interval          time.Duration
	logger            *logger.Logger
}

// NewSessionSweeper constructs a [SessionSweeper] sweeping every interval.
func NewSessionSweeper(sessionRepository store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	return &SessionSweeper{
		sessionRepository: sessionRepository,
		interval:          interval,
		logger:            logger,
	}
}

// Run starts the sweep loop in a background goroutine and returns
// immediately, satisfying [Worker]. The loop exits when ctx is cancelled.
func (s *SessionSweeper) Run(ctx context.Context) {
	go s.loop(ctx)
}

func (s *SessionSweeper) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SessionSweeper) sweep() {
	ctx := s.logger.WithContext(context.Background())

	removed, err := s.sessionRepository.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Err(err).Msg("session sweep ended with error")
		return
	}

	if removed > 0 {
		s.logger.Info().Int64("sessions_removed", removed).Msg("expired sessions swept")
	}
}
