// Package stats fetches volatile per-user numbers (volumes, earnings) from
// the external stats service and overlays them onto locally stored data via
// a TTL cache plus a background refresh queue.
package stats

import (
	"context"
	"errors"
)

// ErrNotReady reports a cache miss: a background refresh has been scheduled
// and the caller should degrade (render a loading state) instead of blocking.
var ErrNotReady = errors.New("stats not yet available")

// Overlay is the read path for volatile user stats. It never performs the
// external lookup on the request path; misses only schedule background work.
type Overlay struct {
	store Store
	queue *Worker
}

func NewOverlay(store Store, queue *Worker) *Overlay {
	return &Overlay{store: store, queue: queue}
}

// Get returns the cached stats for a user, or ErrNotReady after scheduling
// a background refresh.
func (o *Overlay) Get(ctx context.Context, userID string) (*UserStats, error) {
	stats, ok, err := o.store.Get(ctx, userID)
	if err != nil {
		// a broken cache behaves like a miss, the refresh will repopulate it
		o.queue.Enqueue(userID)
		return nil, ErrNotReady
	}
	if !ok {
		o.queue.Enqueue(userID)
		return nil, ErrNotReady
	}
	return stats, nil
}

// Refresh unconditionally schedules a background refresh for the user.
func (o *Overlay) Refresh(userID string) {
	o.queue.Enqueue(userID)
}
