package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"
)

// Local is an in-process JSON cache. Every entry shares the life window given
// at construction; the ttl argument of SetJSON is ignored.
type Local struct {
	cache *bigcache.BigCache
}

func NewLocal(ctx context.Context, lifeWindow time.Duration) (*Local, error) {
	if lifeWindow <= 0 {
		lifeWindow = time.Hour
	}
	cfg := bigcache.DefaultConfig(lifeWindow)
	cfg.Shards = 16
	cfg.HardMaxCacheSize = 64
	cfg.Verbose = false

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Local{cache: c}, nil
}

func (l *Local) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, err := l.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return l.cache.Set(key, b)
}

func (l *Local) Delete(_ context.Context, key string) error {
	err := l.cache.Delete(key)
	if errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil
	}
	return err
}

func (l *Local) Close() error {
	return l.cache.Close()
}
