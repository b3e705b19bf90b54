package job

import (
	"Pinwall/internal/pkg/logger"
	"Pinwall/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type SessionCleanupJob struct {
	authService service.AuthService
}

func NewSessionCleanupJob(authService service.AuthService) *SessionCleanupJob {
	return &SessionCleanupJob{
		authService: authService,
	}
}

func (s *SessionCleanupJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-session-"+uuid.NewString())
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	deleted, err := s.authService.CleanupExpiredSessions(ctx)
	if err != nil {
		log.ErrorContext(ctx, "SessionCleanupJob failed", "err", err)
		return
	}
	if deleted > 0 {
		log.InfoContext(ctx, "expired sessions removed", "count", deleted)
	}
}
