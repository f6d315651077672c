package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"campus-jobs/internal/app"
	"campus-jobs/internal/config"
	"campus-jobs/internal/feed"
	"campus-jobs/internal/logger"
	"campus-jobs/internal/scraper"
	"campus-jobs/internal/telemetry"
	"campus-jobs/internal/ws"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.App.AppName, cfg.App.IsDevelopment())
}

func newContainer(lc fx.Lifecycle, cfg config.Config, l *zap.Logger) (*app.Container, error) {
	c, err := app.NewContainer(context.Background(), cfg, l)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return c.Close()
		},
	})
	return c, nil
}

func newHub(lc fx.Lifecycle, l *zap.Logger) *ws.Hub {
	hub := ws.NewHub(l)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return hub
}

func newFeedStore(cfg config.Config, c *app.Container, l *zap.Logger) *feed.Store {
	return feed.NewStore(c.Redis, c.Local, cfg.Redis.TTL, l)
}

func newRefresher(lc fx.Lifecycle, cfg config.Config, c *app.Container, store *feed.Store, hub *ws.Hub, l *zap.Logger) *feed.Refresher {
	fc := cfg.Feed
	fetcher := scraper.NewListingScraper(fc.Sources, scraper.Selectors{
		Item:     fc.ItemSelector,
		Title:    fc.TitleSelector,
		Link:     fc.LinkSelector,
		Company:  fc.CompanySelector,
		Location: fc.LocationSelect,
	}, fc.Workers, l).WithRateLimit(fc.RateLimit)

	r := feed.NewRefresher(fetcher, store, c.Redis, fc.RefreshInterval, l, hub, feed.EventNotifier(c.Events, l))
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if len(fc.Sources) == 0 {
				l.Info("no feed sources configured, listing refresher disabled")
				return nil
			}
			r.Start(context.Background())
			return nil
		},
		OnStop: func(context.Context) error {
			r.Stop()
			return nil
		},
	})
	return r
}

func newServer(c *app.Container, hub *ws.Hub, store *feed.Store) *fiber.App {
	return app.NewServer(c, hub, store)
}

func registerTelemetry(lc fx.Lifecycle, cfg config.Config, l *zap.Logger) {
	var shutdown func(context.Context) error
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fn, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.CollectorURL)
			if err != nil {
				l.Warn("tracing disabled", zap.Error(err))
				return nil
			}
			shutdown = fn
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, f *fiber.App, _ *feed.Refresher, l *zap.Logger) error {
	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := f.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					l.Error("server stopped", zap.Error(err))
				}
			}()
			l.Info("http server listening", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return f.ShutdownWithContext(ctx)
		},
	})
	return nil
}

func main() {
	fxApp := fx.New(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		fx.Provide(
			config.Load,
			newLogger,
			newContainer,
			newHub,
			newFeedStore,
			newRefresher,
			newServer,
		),
		fx.Invoke(registerTelemetry, startServer),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := fxApp.Stop(stopCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
