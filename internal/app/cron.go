package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/revyse/core/internal/config"
	"github.com/revyse/core/internal/modules/learning/nudges"
	"github.com/revyse/core/internal/modules/processing/ai"
	pkgcron "github.com/revyse/core/internal/pkg/cron"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, aiSvc *ai.Service, nudgeSvc *nudges.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	maxAge := cfg.AI.Cache.MaxAge
	if maxAge > 0 {
		sched.Register(pkgcron.Job{
			Name:        "prune_ai_cache",
			Description: "drop cached generations older than ai.cache.max_age",
			Interval:    time.Hour,
			Fn: func(ctx context.Context) error {
				pruned := aiSvc.PruneCache(ctx, maxAge)
				if pruned > 0 {
					cronLogger.Info("pruned AI cache", zap.Int("entries", pruned))
				}
				return nil
			},
		})
	}

	sched.Register(pkgcron.Job{
		Name:        "streak_sweep",
		Description: "nudge users whose streak is at risk",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			sent, err := nudgeSvc.SweepAtRisk(ctx)
			if err != nil {
				cronLogger.Warn("streak sweep failed", zap.Error(err))
				return err
			}
			if sent > 0 {
				cronLogger.Info("streak sweep done", zap.Int("nudges_sent", sent))
			}
			return nil
		},
	})
}
