package scraper

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campus-jobs/internal/feed"
)

// Selectors says where listing fields live on a source page. Item is
// evaluated against the page, the rest inside each item.
type Selectors struct {
	Item     string
	Title    string
	Link     string
	Company  string
	Location string
}

// ListingScraper collects listings from a fixed set of HTML pages.
type ListingScraper struct {
	sources   []string
	selectors Selectors
	workers   int
	rateLimit int
	logger    *zap.Logger
	userAgent string
}

func NewListingScraper(sources []string, sel Selectors, workers int, logger *zap.Logger) *ListingScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}
	return &ListingScraper{
		sources:   sources,
		selectors: sel,
		workers:   workers,
		logger:    logger,
		userAgent: "campus-jobs-feed/1.0",
	}
}

// WithRateLimit caps requests per second across all workers. Zero disables
// the limit.
func (s *ListingScraper) WithRateLimit(rps int) *ListingScraper {
	s.rateLimit = rps
	return s
}

// Fetch scrapes every source concurrently. A source that fails is logged and
// skipped; Fetch only errors when every source failed.
func (s *ListingScraper) Fetch(ctx context.Context) ([]feed.Listing, error) {
	if len(s.sources) == 0 {
		return []feed.Listing{}, nil
	}

	var (
		mu  sync.Mutex
		all []feed.Listing
	)

	pool := NewWorkerPool(s.workers, len(s.sources))
	pool.SetRateLimit(s.rateLimit)
	results := pool.Run(ctx)
	for _, src := range s.sources {
		src := src
		pool.Submit(Task{Name: src, Run: func(ctx context.Context) error {
			items, err := s.scrapeSource(ctx, src)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		}})
	}
	pool.Close()

	failed := 0
	var lastErr error
	for res := range results {
		if res.Err != nil {
			failed++
			lastErr = res.Err
			s.logger.Warn("feed source failed", zap.String("source", res.Name), zap.Error(res.Err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed == len(s.sources) {
		return nil, lastErr
	}
	return dedupe(all), nil
}

func (s *ListingScraper) scrapeSource(ctx context.Context, src string) ([]feed.Listing, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	host := hostFromURL(src)
	var c *colly.Collector
	if host == "" {
		c = colly.NewCollector(colly.UserAgent(s.userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(s.userAgent), colly.AllowedDomains(host))
	}
	c.SetRequestTimeout(15 * time.Second)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, RandomDelay: 500 * time.Millisecond})

	items := make([]feed.Listing, 0)
	c.OnHTML(s.selectors.Item, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText(s.selectors.Title))
		href := strings.TrimSpace(e.ChildAttr(s.selectors.Link, "href"))
		if title == "" || href == "" {
			return
		}
		link := e.Request.AbsoluteURL(href)
		if link == "" {
			return
		}
		items = append(items, feed.Listing{
			ID:       listingID(link),
			Title:    title,
			Link:     link,
			Company:  childText(e, s.selectors.Company),
			Location: childText(e, s.selectors.Location),
			Source:   host,
		})
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := c.Visit(src); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func childText(e *colly.HTMLElement, sel string) string {
	if strings.TrimSpace(sel) == "" {
		return ""
	}
	return strings.TrimSpace(e.ChildText(sel))
}

func dedupe(in []feed.Listing) []feed.Listing {
	seen := make(map[string]struct{}, len(in))
	out := make([]feed.Listing, 0, len(in))
	for _, l := range in {
		if _, ok := seen[l.ID]; ok {
			continue
		}
		seen[l.ID] = struct{}{}
		out = append(out, l)
	}
	return out
}

// listingID is stable across refreshes so clients can diff snapshots.
func listingID(link string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Hostname()
}
