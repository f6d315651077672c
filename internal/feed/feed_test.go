package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-jobs/internal/events"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string]Snapshot
	err  error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string]Snapshot{}}
}

func (m *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	snap, ok := m.data[key]
	if !ok {
		return false, nil
	}
	*(out.(*Snapshot)) = snap
	return true, nil
}

func (m *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value.(Snapshot)
	return nil
}

func (m *mapCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// failingWrites accepts reads and deletes but rejects every write.
type failingWrites struct {
	*mapCache
}

func (f failingWrites) SetJSON(context.Context, string, any, time.Duration) error {
	return errors.New("entry too large")
}

func TestPutDropsStaleLocalCopyWhenLocalWriteFails(t *testing.T) {
	ctx := context.Background()
	local := newMapCache()
	local.data[snapshotKey] = Snapshot{Listings: []Listing{{ID: "old"}}}
	primary := newMapCache()

	store := NewStore(primary, failingWrites{local}, time.Minute, nil)
	if err := store.Put(ctx, Snapshot{Listings: []Listing{{ID: "new"}}}); err == nil {
		t.Fatalf("expected the local write error")
	}
	if _, ok := local.data[snapshotKey]; ok {
		t.Fatalf("stale local snapshot should be removed")
	}
	if got := store.Get(ctx); len(got.Listings) != 1 || got.Listings[0].ID != "new" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	primary, local := newMapCache(), newMapCache()
	store := NewStore(primary, local, time.Minute, nil)
	if err := store.Put(ctx, Snapshot{Listings: []Listing{{ID: "a"}}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := store.Get(ctx); got.Listings == nil || len(got.Listings) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", got)
	}
}

type stubFetcher struct {
	mu       sync.Mutex
	calls    int
	listings []Listing
	err      error
}

func (f *stubFetcher) Fetch(context.Context) ([]Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.listings, f.err
}

func (f *stubFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type stubLock struct {
	held bool
}

func (l *stubLock) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	if l.held {
		return false, nil
	}
	l.held = true
	return true, nil
}

func TestStoreFallsBackWhenPrimaryFails(t *testing.T) {
	ctx := context.Background()
	primary := newMapCache()
	local := newMapCache()
	store := NewStore(primary, local, time.Minute, nil)

	if got := store.Get(ctx); got.Listings == nil || len(got.Listings) != 0 {
		t.Fatalf("expected empty non-nil listings, got %+v", got)
	}

	snap := Snapshot{Listings: []Listing{{ID: "1", Title: "Barista"}}, RefreshedAt: time.Unix(100, 0).UTC()}
	if err := store.Put(ctx, snap); err != nil {
		t.Fatalf("put: %v", err)
	}

	primary.err = errors.New("connection refused")
	got := store.Get(ctx)
	if len(got.Listings) != 1 || got.Listings[0].Title != "Barista" {
		t.Fatalf("expected local snapshot, got %+v", got)
	}
}

func TestRefreshOnceStoresAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMapCache(), nil, time.Minute, nil)
	fetcher := &stubFetcher{listings: []Listing{{ID: "a"}, {ID: "b"}}}
	rec := &events.Recorder{}

	var notified []Snapshot
	hub := NotifierFunc(func(_ context.Context, snap Snapshot) {
		notified = append(notified, snap)
	})

	r := NewRefresher(fetcher, store, &stubLock{}, time.Minute, nil, hub, EventNotifier(rec, nil))
	r.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	ok, err := r.RefreshOnce(ctx)
	if err != nil || !ok {
		t.Fatalf("refresh: ok=%v err=%v", ok, err)
	}

	got := store.Get(ctx)
	if len(got.Listings) != 2 || !got.RefreshedAt.Equal(r.now()) {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if len(notified) != 1 || len(notified[0].Listings) != 2 {
		t.Fatalf("expected one notification, got %d", len(notified))
	}
	subjects := rec.Subjects()
	if len(subjects) != 1 || subjects[0] != events.SubjectFeedUpdated {
		t.Fatalf("unexpected events %v", subjects)
	}
}

func TestRefreshOnceSkipsWhenLocked(t *testing.T) {
	store := NewStore(newMapCache(), nil, time.Minute, nil)
	fetcher := &stubFetcher{}
	r := NewRefresher(fetcher, store, &stubLock{held: true}, time.Minute, nil)

	ok, err := r.RefreshOnce(context.Background())
	if ok || err != nil {
		t.Fatalf("expected skip, got ok=%v err=%v", ok, err)
	}
	if fetcher.Calls() != 0 {
		t.Fatalf("fetcher should not run while locked")
	}
}

func TestRefreshOnceKeepsPreviousSnapshotOnFailure(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMapCache(), nil, time.Minute, nil)
	_ = store.Put(ctx, Snapshot{Listings: []Listing{{ID: "old"}}})

	fetcher := &stubFetcher{err: errors.New("boom")}
	r := NewRefresher(fetcher, store, nil, time.Minute, nil)

	if _, err := r.RefreshOnce(ctx); err == nil {
		t.Fatalf("expected fetch error")
	}
	if got := store.Get(ctx); len(got.Listings) != 1 || got.Listings[0].ID != "old" {
		t.Fatalf("previous snapshot should survive, got %+v", got)
	}
}

func TestStartRefreshesImmediatelyAndStops(t *testing.T) {
	store := NewStore(newMapCache(), nil, time.Minute, nil)
	fetcher := &stubFetcher{listings: []Listing{{ID: "x"}}}
	r := NewRefresher(fetcher, store, nil, time.Hour, nil)

	r.Start(context.Background())
	r.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for fetcher.Calls() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	r.Stop()
	r.Stop()

	if fetcher.Calls() != 1 {
		t.Fatalf("expected exactly one refresh, got %d", fetcher.Calls())
	}
}
