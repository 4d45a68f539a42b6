package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QualityWorker listens for PostgreSQL NOTIFY on the 'video_changes' channel
// and batches quality recalculations: many edits to the same video within the
// window cost one recompute.
type QualityWorker struct {
	pool    *pgxpool.Pool
	quality *QualityService
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[int64]struct{}
}

// NewQualityWorker creates a quality recalculation worker.
func NewQualityWorker(pool *pgxpool.Pool, quality *QualityService, cache *CacheService) *QualityWorker {
	return &QualityWorker{
		pool:    pool,
		quality: quality,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[int64]struct{}),
	}
}

// Start begins listening for video_changes notifications and processing
// batches. Blocks until ctx is cancelled.
func (w *QualityWorker) Start(ctx context.Context) {
	log.Printf("quality-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("quality-worker: stopping (context cancelled)")
				return
			}
			log.Printf("quality-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("quality-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

func (w *QualityWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN video_changes"); err != nil {
		return err
	}
	log.Println("quality-worker: listening on video_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

func (w *QualityWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

func (w *QualityWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	for videoID := range batch {
		if err := w.quality.Recalculate(ctx, videoID); err != nil {
			log.Printf("quality-worker: recalculate error for %d: %v", videoID, err)
			continue
		}
		if w.cache != nil {
			if err := w.cache.InvalidateVideo(ctx, videoID); err != nil {
				log.Printf("quality-worker: cache invalidate error for %d: %v", videoID, err)
			}
		}
	}
}
