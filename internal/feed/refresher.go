package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"campus-jobs/internal/events"
	"campus-jobs/internal/telemetry"
)

const refreshLockKey = "feed:refresh:lock"

var tracer = telemetry.GetTracer("campus-jobs/feed")

type Fetcher interface {
	Fetch(ctx context.Context) ([]Listing, error)
}

type Locker interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
}

// Notifier is told about every stored snapshot.
type Notifier interface {
	FeedUpdated(ctx context.Context, snap Snapshot)
}

type NotifierFunc func(ctx context.Context, snap Snapshot)

func (f NotifierFunc) FeedUpdated(ctx context.Context, snap Snapshot) { f(ctx, snap) }

type Refresher struct {
	fetcher   Fetcher
	store     *Store
	lock      Locker
	interval  time.Duration
	logger    *zap.Logger
	notifiers []Notifier
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefresher(fetcher Fetcher, store *Store, lock Locker, interval time.Duration, logger *zap.Logger, notifiers ...Notifier) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		fetcher:   fetcher,
		store:     store,
		lock:      lock,
		interval:  interval,
		logger:    logger,
		notifiers: notifiers,
		now:       time.Now,
	}
}

var errNoFetcher = errors.New("feed: no fetcher configured")

// RefreshOnce fetches, stores and announces one snapshot. It reports false
// without error when another instance holds the refresh lock.
func (r *Refresher) RefreshOnce(ctx context.Context) (bool, error) {
	ctx, span := tracer.Start(ctx, "Refresher.RefreshOnce")
	defer span.End()

	if r.fetcher == nil {
		return false, errNoFetcher
	}

	if r.lock != nil {
		acquired, err := r.lock.SetIfNotExists(ctx, refreshLockKey, "1", r.interval)
		if err != nil {
			r.logger.Warn("feed refresh lock unavailable, refreshing anyway", zap.Error(err))
		} else if !acquired {
			span.SetAttributes(telemetry.String("feed.skipped", "locked"))
			return false, nil
		}
	}

	listings, err := r.fetcher.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch")
		return false, err
	}

	snap := Snapshot{Listings: listings, RefreshedAt: r.now().UTC()}
	if err := r.store.Put(ctx, snap); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store")
		return false, err
	}
	span.SetAttributes(telemetry.Int("feed.listings", len(listings)))

	for _, n := range r.notifiers {
		n.FeedUpdated(ctx, normalize(snap))
	}

	r.logger.Info("feed refreshed", zap.Int("listings", len(listings)))
	return true, nil
}

// Start refreshes immediately and then on every tick until Stop is called or
// ctx ends. Calling Start twice is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx, r.done)
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if _, err := r.RefreshOnce(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("feed refresh failed", zap.Error(err))
	}
}

func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// EventNotifier announces refreshed snapshots on the event bus.
func EventNotifier(pub events.Publisher, logger *zap.Logger) Notifier {
	return NotifierFunc(func(ctx context.Context, snap Snapshot) {
		events.Emit(ctx, pub, logger, events.SubjectFeedUpdated, events.FeedEvent{
			Count:       len(snap.Listings),
			RefreshedAt: snap.RefreshedAt,
		})
	})
}
