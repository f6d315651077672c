package feed

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const snapshotKey = "feed:snapshot"

// JSONCache is the subset of a cache backend the store needs. Both the redis
// and the in-process cache satisfy it.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Store holds the latest snapshot. Reads prefer the shared cache and fall back
// to the local one, so a redis outage still serves the last refresh this
// process saw.
type Store struct {
	primary  JSONCache
	fallback JSONCache
	ttl      time.Duration
	logger   *zap.Logger
}

func NewStore(primary, fallback JSONCache, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{primary: primary, fallback: fallback, ttl: ttl, logger: logger}
}

// Get returns the current snapshot. An empty snapshot is returned when nothing
// has been stored yet.
func (s *Store) Get(ctx context.Context) Snapshot {
	var snap Snapshot
	if s.primary != nil {
		ok, err := s.primary.GetJSON(ctx, snapshotKey, &snap)
		if err != nil {
			s.logger.Warn("feed snapshot read failed, using local cache", zap.Error(err))
		} else if ok {
			return normalize(snap)
		}
	}
	if s.fallback != nil {
		snap = Snapshot{}
		ok, err := s.fallback.GetJSON(ctx, snapshotKey, &snap)
		if err != nil {
			s.logger.Warn("local feed snapshot read failed", zap.Error(err))
		} else if ok {
			return normalize(snap)
		}
	}
	return Snapshot{Listings: []Listing{}}
}

func (s *Store) Put(ctx context.Context, snap Snapshot) error {
	snap = normalize(snap)
	var firstErr error
	if s.fallback != nil {
		if err := s.fallback.SetJSON(ctx, snapshotKey, snap, s.ttl); err != nil {
			firstErr = err
			// An older local copy must not outlive a newer snapshot in redis.
			if delErr := s.fallback.Delete(ctx, snapshotKey); delErr != nil {
				s.logger.Warn("stale local feed snapshot not removed", zap.Error(delErr))
			}
		}
	}
	if s.primary != nil {
		if err := s.primary.SetJSON(ctx, snapshotKey, snap, s.ttl); err != nil {
			s.logger.Warn("feed snapshot write failed", zap.Error(err))
			if firstErr == nil && s.fallback == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Reset removes the stored snapshot from both caches.
func (s *Store) Reset(ctx context.Context) error {
	var errs []error
	for _, c := range []JSONCache{s.primary, s.fallback} {
		if c == nil {
			continue
		}
		if err := c.Delete(ctx, snapshotKey); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func normalize(snap Snapshot) Snapshot {
	if snap.Listings == nil {
		snap.Listings = []Listing{}
	}
	return snap
}
