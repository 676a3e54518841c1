package stats

import (
	"context"
	"sync"
	"time"

	"partner_cabinet/internal/logger"
)

// Source is the read half of the stats service the worker fetches from.
type Source interface {
	Status(ctx context.Context, userID string) (*UserStats, error)
}

// Worker consumes refresh jobs and fills the cache. Jobs are keyed by user
// id; re-running one is always safe since the cache write simply overwrites
// (last writer wins). Concurrent jobs for the same key are not coordinated.
type Worker struct {
	src        Source
	store      Store
	jobs       chan string
	maxRetries int
	delay      time.Duration

	// notify, when set, is called after a successful cache write so the
	// transport layer can push a "stats ready" event to the user.
	notify func(userID string)

	wg   sync.WaitGroup
	quit chan struct{}
	once sync.Once
}

func NewWorker(src Source, store Store, maxRetries int, delay time.Duration) *Worker {
	return &Worker{
		src:        src,
		store:      store,
		jobs:       make(chan string, 256),
		maxRetries: maxRetries,
		delay:      delay,
		quit:       make(chan struct{}),
	}
}

// OnSuccess registers the post-refresh notification hook. Must be called
// before Start.
func (w *Worker) OnSuccess(fn func(userID string)) {
	w.notify = fn
}

// Start launches n consumer goroutines.
func (w *Worker) Start(n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.run()
	}
	logger.Info("stats refresh workers started", "count", n)
}

// Stop drains nothing: queued jobs are abandoned, the next cache miss
// re-enqueues them.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.quit) })
	w.wg.Wait()
}

// Enqueue schedules a refresh for the user. Non-blocking: when the queue is
// full the job is dropped and the next cache miss tries again.
func (w *Worker) Enqueue(userID string) {
	select {
	case w.jobs <- userID:
	default:
		RefreshDropped.Inc()
		logger.Warn("stats refresh queue full, dropping job", "user_id", userID)
	}
}

func (w *Worker) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.quit:
			return
		case userID := <-w.jobs:
			w.refresh(context.Background(), userID)
		}
	}
}

// refresh fetches stats and writes them to the cache, retrying a bounded
// number of times with a delay between attempts. After exhausting retries it
// gives up and leaves the cache untouched for that key.
func (w *Worker) refresh(ctx context.Context, userID string) {
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		data, err := w.src.Status(ctx, userID)
		if err == nil {
			if err := w.store.Set(ctx, userID, data); err != nil {
				logger.Error("failed to cache user stats", "user_id", userID, "error", err)
				RefreshFailure.Inc()
				return
			}
			logger.Info("stats cached", "user_id", userID)
			RefreshSuccess.Inc()
			if w.notify != nil {
				w.notify(userID)
			}
			return
		}

		logger.Warn("stats refresh attempt failed",
			"user_id", userID, "attempt", attempt, "error", err)
		if attempt == w.maxRetries {
			break
		}
		select {
		case <-w.quit:
			return
		case <-time.After(w.delay):
		}
	}
	RefreshFailure.Inc()
	logger.Error("stats refresh gave up", "user_id", userID, "attempts", w.maxRetries)
}
