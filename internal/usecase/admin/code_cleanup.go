package admin

import (
	"context"
	"time"

	"github.com/umeshkhanal/rumooz/internal/logger"

	"go.uber.org/zap"
)

// expiredCodeRetention keeps an expired code long enough for a late confirmation to be told
// it expired rather than that it is wrong.
const expiredCodeRetention = 24 * time.Hour

// StartCodeCleanupJob starts a background job that drops verification codes expired for longer
// than expiredCodeRetention
func (s *Service) StartCodeCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Code cleanup job started",
		zap.Duration("interval", interval),
	)

	s.cleanupExpiredCodes(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Code cleanup job stopped")
			return
		case <-ticker.C:
			s.cleanupExpiredCodes(ctx)
		}
	}
}

func (s *Service) cleanupExpiredCodes(ctx context.Context) {
	cleared, err := s.repo.ClearExpiredCodes(ctx, s.now().Add(-expiredCodeRetention))
	if err != nil {
		logger.Error("Failed to clear expired codes", zap.Error(err))
		return
	}

	logger.Debug("Expired codes cleared",
		zap.Int64("cleared", cleared),
	)
}
