// Package cache is an advisory look-aside cache. Entries may be stale; callers
// must behave the same with a cold, warm or disabled cache.
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store はバイト列のキャッシュ。
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Cache は Store に型付きの読み込みと同時ロードの抑止を足したもの。nil でも使える。
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

func New(store Store, ttl time.Duration) *Cache {
	if store == nil {
		return nil
	}
	return &Cache{store: store, ttl: ttl}
}

func (c *Cache) TTL() time.Duration {
	if c == nil {
		return 0
	}
	return c.ttl
}

// Evict はキーを削除する。失敗はログに残すだけ。
func (c *Cache) Evict(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		log.Printf("[WARN] cache evict %v: %v", keys, err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.store.Close()
}

// Fetch は key のキャッシュを返し、無ければ load の結果を保存して返す。
// キャッシュ自体の失敗は load にフォールバックする。
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		log.Printf("[WARN] cache get %s: %v", key, err)
	} else if ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.Evict(ctx, key)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return v, err
		}
		if raw, err := json.Marshal(v); err == nil {
			if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
				log.Printf("[WARN] cache set %s: %v", key, err)
			}
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Open は設定に応じた Cache を返す。driver が none のときは nil（キャッシュ無効）。
func Open(driver, path string, ttl time.Duration) (*Cache, error) {
	switch driver {
	case "", "memory":
		return New(NewMemory(), ttl), nil
	case "bolt":
		s, err := NewBolt(path)
		if err != nil {
			return nil, err
		}
		return New(s, ttl), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported cache driver: %q", driver)
	}
}
