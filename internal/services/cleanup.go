package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/pkg/logger"
	"gorm.io/gorm"
)

// TokenCleanupService purges refresh tokens that can never be used again:
// expired ones and revoked ones older than the retention window. Without it
// the refresh_tokens table grows by one row per login forever.
type TokenCleanupService struct {
	db        *gorm.DB
	scheduler *cron.Cron
	retention time.Duration
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{
		db:        db,
		retention: 30 * 24 * time.Hour,
	}
}

// StartScheduler runs a cleanup immediately and then every night at 03:00.
func (s *TokenCleanupService) StartScheduler() {
	s.scheduler = cron.New()

	if _, err := s.scheduler.AddFunc("0 3 * * *", func() {
		s.runCleanup()
	}); err != nil {
		logger.Errorf("token cleanup: failed to schedule: %v", err)
		return
	}

	s.scheduler.Start()
	go s.runCleanup()
	logger.Info().Msg("token cleanup scheduler started")
}

func (s *TokenCleanupService) StopScheduler() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *TokenCleanupService) runCleanup() {
	deleted, err := s.CleanupTokens()
	if err != nil {
		logger.Errorf("token cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		logger.Infof("token cleanup removed %d stale refresh tokens", deleted)
	}
}

// CleanupTokens deletes expired tokens and revoked tokens past retention.
// Returns the number of rows removed.
func (s *TokenCleanupService) CleanupTokens() (int64, error) {
	now := time.Now()
	cutoff := now.Add(-s.retention)

	result := s.db.Where("expires_at < ?", now).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", cutoff).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}
