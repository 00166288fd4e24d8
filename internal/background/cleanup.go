package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one in-memory store the cleanup manager sweeps
type Task struct {
	Name  string
	Sweep func() int // returns the number of entries removed
}

// CleanupManager periodically drops expired sessions, idle login records,
// elapsed cooldowns and idle chat conversations. Expiry is still checked on
// every read; sweeping only bounds memory.
type CleanupManager struct {
	tasks    []Task
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(logger *slog.Logger, interval time.Duration, tasks ...Task) *CleanupManager {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &CleanupManager{
		tasks:    tasks,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called or ctx is cancelled
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cm.RunOnce(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

// RunOnce sweeps every task and returns the total number of entries removed
func (cm *CleanupManager) RunOnce(ctx context.Context) int {
	total := 0
	for _, task := range cm.tasks {
		removed := task.Sweep()
		total += removed
		if removed > 0 {
			cm.logger.DebugContext(ctx, "cleanup swept entries",
				slog.String("task", task.Name),
				slog.Int("removed", removed))
		}
	}

	if total > 0 {
		cm.logger.InfoContext(ctx, "cleanup completed", slog.Int("removed", total))
	}
	return total
}

// Stop signals the cleanup manager to stop. It is safe to call more than once.
func (cm *CleanupManager) Stop() {
	cm.stopOnce.Do(func() { close(cm.stopCh) })
}
