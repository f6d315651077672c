package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.uber.org/zap"

	"campus-jobs/internal/config"
	"campus-jobs/internal/events"
	"campus-jobs/internal/feed"
	"campus-jobs/internal/infrastructure/cache"
	"campus-jobs/internal/logger"
	"campus-jobs/internal/scraper"
)

// scraper runs one feed refresh and exits. Useful from cron when the server
// runs with its own refresher disabled.
func main() {
	sources := flag.String("sources", "", "comma separated source URLs (defaults to FEED_SOURCES)")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	reset := flag.Bool("reset", false, "remove the stored snapshot before refreshing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.New(cfg.App.AppName, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	fc := cfg.Feed
	if s := strings.TrimSpace(*sources); s != "" {
		fc.Sources = nil
		for _, src := range strings.Split(s, ",") {
			if src = strings.TrimSpace(src); src != "" {
				fc.Sources = append(fc.Sources, src)
			}
		}
	}
	if len(fc.Sources) == 0 {
		l.Fatal("no sources: pass -sources or set FEED_SOURCES")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	redis := cache.NewRedis(cfg.Redis, l)
	defer func() { _ = redis.Close() }()
	if !redis.Available() {
		l.Warn("redis unavailable, the snapshot will not outlive this process")
	}

	var pub events.Publisher = events.Noop{}
	if cfg.NATS.URL != "" {
		p, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.ConnTimeout, l)
		if err != nil {
			l.Warn("nats unavailable", zap.Error(err))
		} else {
			pub = p
		}
	}
	defer pub.Close()

	fetcher := scraper.NewListingScraper(fc.Sources, scraper.Selectors{
		Item:     fc.ItemSelector,
		Title:    fc.TitleSelector,
		Link:     fc.LinkSelector,
		Company:  fc.CompanySelector,
		Location: fc.LocationSelect,
	}, fc.Workers, l).WithRateLimit(fc.RateLimit)

	store := feed.NewStore(redis, nil, cfg.Redis.TTL, l)
	if *reset {
		if err := store.Reset(ctx); err != nil {
			l.Fatal("reset failed", zap.Error(err))
		}
		l.Info("stored feed snapshot removed")
	}
	r := feed.NewRefresher(fetcher, store, nil, fc.RefreshInterval, l, feed.EventNotifier(pub, l))

	if _, err := r.RefreshOnce(ctx); err != nil {
		l.Fatal("refresh failed", zap.Error(err))
	}
}
