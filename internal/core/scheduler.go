package core

// scheduler.go provides background job scheduling for maintenance tasks.
//
// Currently implements audit log pruning, which keeps the in-memory audit log
// bounded to the newest MaxEntries entries. The scheduler is long-running and
// context-aware for graceful shutdown.

import (
	"context"
	"log/slog"
	"time"
)

// PruneConfig holds configuration for the audit pruner.
// Zero values fall back to defaults.
type PruneConfig struct {
	MaxEntries    int           // Entries to keep (default: 10000)
	CheckInterval time.Duration // How often to run (default: 1h)
}

func (c PruneConfig) withDefaults() PruneConfig {
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10000
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = time.Hour
	}
	return c
}

// StartPruner runs a prune immediately, then every CheckInterval, until ctx is cancelled.
// It blocks; callers start it in a goroutine.
func (l *AuditLog) StartPruner(ctx context.Context, cfg PruneConfig) {
	cfg = cfg.withDefaults()
	slog.Info("audit pruner started",
		"max_entries", cfg.MaxEntries,
		"interval", cfg.CheckInterval,
	)

	l.runPruneJob(cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit pruner stopped")
			return
		case <-ticker.C:
			l.runPruneJob(cfg)
		}
	}
}

// runPruneJob performs one prune cycle.
func (l *AuditLog) runPruneJob(cfg PruneConfig) {
	start := time.Now()
	removed := l.Prune(cfg.MaxEntries)
	if removed > 0 {
		slog.Info("pruned audit log entries",
			"entries_pruned", removed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("audit prune job completed", "entries_pruned", 0)
}
