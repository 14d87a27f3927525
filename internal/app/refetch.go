package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-bot/internal/model"
)

type adminLister interface {
	ListByRole(ctx context.Context, role string) ([]model.Account, error)
}

type reportRefresher interface {
	RefreshReports(ctx context.Context, session string) error
}

// Refetcher is the background refetch loop: it periodically re-pulls pending
// user reports for every linked admin so the moderation view stays warm, the
// way the dashboard's interval refetch did. Failures are logged and waited
// out; nothing is retried inline.
type Refetcher struct {
	accounts   adminLister
	moderation reportRefresher
	interval   time.Duration
	logger     *zap.Logger
	stopChan   chan struct{}
}

func NewRefetcher(accounts adminLister, moderation reportRefresher, interval time.Duration, logger *zap.Logger) *Refetcher {
	return &Refetcher{
		accounts:   accounts,
		moderation: moderation,
		interval:   interval,
		logger:     logger,
		stopChan:   make(chan struct{}),
	}
}

// Start launches the loop.
func (r *Refetcher) Start(ctx context.Context) {
	r.logger.Info("Starting background refetch loop",
		zap.Duration("interval", r.interval))
	go r.run(ctx)
}

// Stop terminates the loop.
func (r *Refetcher) Stop() {
	close(r.stopChan)
}

func (r *Refetcher) run(ctx context.Context) {
	// First pass right away, then on the interval.
	r.refetch(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refetch(ctx)
		case <-r.stopChan:
			r.logger.Info("Refetch loop stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Refetch loop cancelled")
			return
		}
	}
}

func (r *Refetcher) refetch(ctx context.Context) {
	admins, err := r.accounts.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		r.logger.Error("Failed to list admin accounts", zap.Error(err))
		return
	}

	for _, admin := range admins {
		if err := r.moderation.RefreshReports(ctx, admin.SessionCookie); err != nil {
			r.logger.Warn("Report refetch failed",
				zap.Int64("telegram_id", admin.TelegramID),
				zap.Error(err))
		}
	}
}
