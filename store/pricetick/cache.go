package pricetick

import (
	"context"
	"fmt"
	"time"

	"synthpool/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache cache List results for exp, since is rounded up to the minute
func Cache(store core.IPriceTickStore, exp time.Duration) core.IPriceTickStore {
	if exp <= 0 {
		exp = time.Minute
	}

	return &cachePriceTickStore{
		IPriceTickStore: store,
		cache:           gcache.New(256).LRU().Expiration(exp).Build(),
		sf:              &singleflight.Group{},
	}
}

type cachePriceTickStore struct {
	core.IPriceTickStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePriceTickStore) Create(ctx context.Context, tick *core.PriceTick) error {
	if err := s.IPriceTickStore.Create(ctx, tick); err != nil {
		return err
	}

	s.cache.Purge()
	return nil
}

func (s *cachePriceTickStore) List(ctx context.Context, filter core.PriceTickFilter) ([]*core.PriceTick, error) {
	filter.Since = roundUp(filter.Since)
	key := listKey(filter)

	if v, err := s.cache.Get(key); err == nil {
		if ticks, ok := v.([]*core.PriceTick); ok {
			return ticks, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ticks, err := s.IPriceTickStore.List(ctx, filter)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, ticks)
		return ticks, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.PriceTick), nil
}

// roundUp next whole minute, the created_at > since window only shrinks
func roundUp(t time.Time) time.Time {
	return t.Add(time.Minute - 1).Truncate(time.Minute)
}

func listKey(filter core.PriceTickFilter) string {
	return fmt.Sprintf("ticks:%s:%d:%d", filter.Symbol, filter.Since.Unix(), filter.Limit)
}
