package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const listingPage = `<html><body>
<div class="job"><a class="job-title" href="/jobs/1">Lab Assistant</a><span class="job-company">Chem Dept</span><span class="job-location">North</span></div>
<div class="job"><a class="job-title" href="/jobs/2">Barista</a><span class="job-company">Cafe</span></div>
<div class="job"><a class="job-title" href="/jobs/1">Lab Assistant</a></div>
<div class="job"><span class="job-title">No link</span></div>
</body></html>`

func testSelectors() Selectors {
	return Selectors{
		Item:     ".job",
		Title:    ".job-title",
		Link:     "a[href]",
		Company:  ".job-company",
		Location: ".job-location",
	}
}

func TestListingScraperFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, listingPage)
	}))
	defer srv.Close()

	s := NewListingScraper([]string{srv.URL + "/board", srv.URL + "/broken"}, testSelectors(), 2, nil)
	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 deduplicated listings, got %d: %+v", len(got), got)
	}

	byTitle := map[string]bool{}
	for _, l := range got {
		byTitle[l.Title] = true
		if l.ID == "" || l.Source == "" {
			t.Fatalf("listing missing id or source: %+v", l)
		}
		if l.Title == "Lab Assistant" {
			if l.Link != srv.URL+"/jobs/1" || l.Company != "Chem Dept" || l.Location != "North" {
				t.Fatalf("unexpected listing: %+v", l)
			}
		}
	}
	if !byTitle["Lab Assistant"] || !byTitle["Barista"] {
		t.Fatalf("missing listings: %+v", got)
	}
}

func TestListingScraperAllSourcesFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewListingScraper([]string{srv.URL}, testSelectors(), 1, nil)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error when every source fails")
	}
}

func TestListingScraperNoSources(t *testing.T) {
	got, err := NewListingScraper(nil, testSelectors(), 1, nil).Fetch(context.Background())
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v err=%v", got, err)
	}
}

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := NewWorkerPool(3, 10)
	results := pool.Run(context.Background())

	var ran atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(Task{Name: fmt.Sprint(i), Run: func(context.Context) error {
			ran.Add(1)
			if i == 4 {
				return boom
			}
			return nil
		}})
	}
	pool.Close()

	failures := 0
	count := 0
	for res := range results {
		count++
		if errors.Is(res.Err, boom) {
			failures++
			if res.Name != "4" {
				t.Fatalf("failure reported for task %s", res.Name)
			}
		}
	}
	if count != 10 || ran.Load() != 10 || failures != 1 {
		t.Fatalf("count=%d ran=%d failures=%d", count, ran.Load(), failures)
	}
}

func TestWorkerPoolStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkerPool(1, 1)
	results := pool.Run(ctx)
	cancel()

	select {
	case _, ok := <-results:
		if ok {
			for range results {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("results channel not closed after cancel")
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	pool := NewWorkerPool(4, 5)
	pool.SetRateLimit(50)
	results := pool.Run(context.Background())

	start := time.Now()
	for i := 0; i < 5; i++ {
		pool.Submit(Task{Name: fmt.Sprint(i), Run: func(context.Context) error { return nil }})
	}
	pool.Close()

	count := 0
	for range results {
		count++
	}
	if count != 5 {
		t.Fatalf("expected 5 results, got %d", count)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("rate limit not applied, finished in %s", elapsed)
	}
}
