package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixelpost/pixelpost/app/feed"
)

// PruneSessionsTask closes reading sessions that have been idle for
// longer than the configured TTL.
type PruneSessionsTask struct {
	Task
	sessionManager *feed.Manager
	ttl            time.Duration
}

func NewPruneSessionsTask(sessionManager *feed.Manager, ttl time.Duration) *PruneSessionsTask {
	return &PruneSessionsTask{
		Task:           NewTask(TaskTypePruneSessions, "sessions"),
		sessionManager: sessionManager,
		ttl:            ttl,
	}
}

func (t *PruneSessionsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	pruned := t.sessionManager.PruneIdle(t.ttl)
	if pruned > 0 {
		slog.Info("Task completed",
			"type", t.GetType(),
			"duration", t.GetDuration(),
			"pruned", pruned,
			"remaining", t.sessionManager.Count())
	}
	return nil
}
