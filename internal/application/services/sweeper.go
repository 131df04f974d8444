package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
)

// Sweeper periodically removes expired file records. Reads enforce expiry on
// their own, so a missed run only delays reclamation.
type Sweeper struct {
	files    ports.FileService
	logger   *zap.Logger
	interval time.Duration
}

func NewSweeper(files ports.FileService, logger *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{files: files, logger: logger, interval: interval}
}

func (s *Sweeper) Worker(ctx context.Context) {
	s.logger.Info("starting expiry sweeper", zap.Duration("interval", s.interval))

	defer func() {
		s.logger.Info("expiry sweeper gracefully stopped")
	}()

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	n, err := s.files.SweepExpired(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("expired files removed", zap.Int("count", n))
	}
}
