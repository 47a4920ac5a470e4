package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"findaccommodation/cache"
	"findaccommodation/search"
)

var _ Listings = (*CachedClient)(nil)

// sharedLoadTimeout bounds an upstream fetch that outlives the request that
// started it.
const sharedLoadTimeout = 30 * time.Second

// CachedClient serves Listings reads from a cache.Store and collapses
// concurrent identical requests into one upstream call. Errors are never cached.
type CachedClient struct {
	next  Listings
	store cache.Store
	group singleflight.Group
}

func NewCachedClient(next Listings, store cache.Store) *CachedClient {
	return &CachedClient{next: next, store: store}
}

func (c *CachedClient) SearchApartments(ctx context.Context, filter search.State, page, size int) (*ApartmentPage, error) {
	key := fmt.Sprintf("search:%s:%d:%d", filter.Encode().Encode(), page, size)
	return cached(ctx, c, key, func(ctx context.Context) (*ApartmentPage, error) {
		return c.next.SearchApartments(ctx, filter, page, size)
	})
}

func (c *CachedClient) FeaturedApartments(ctx context.Context, page, size int) (*ApartmentPage, error) {
	key := fmt.Sprintf("featured:%d:%d", page, size)
	return cached(ctx, c, key, func(ctx context.Context) (*ApartmentPage, error) {
		return c.next.FeaturedApartments(ctx, page, size)
	})
}

func (c *CachedClient) GetApartment(ctx context.Context, id string) (*Apartment, error) {
	return cached(ctx, c, "apartment:"+id, func(ctx context.Context) (*Apartment, error) {
		return c.next.GetApartment(ctx, id)
	})
}

func (c *CachedClient) States(ctx context.Context) ([]State, error) {
	states, err := cached(ctx, c, "states", func(ctx context.Context) (*[]State, error) {
		s, err := c.next.States(ctx)
		return &s, err
	})
	if err != nil {
		return nil, err
	}
	return *states, nil
}

func (c *CachedClient) Countries(ctx context.Context) ([]Country, error) {
	countries, err := cached(ctx, c, "countries", func(ctx context.Context) (*[]Country, error) {
		s, err := c.next.Countries(ctx)
		return &s, err
	})
	if err != nil {
		return nil, err
	}
	return *countries, nil
}

func cached[T any](ctx context.Context, c *CachedClient, key string, load func(context.Context) (*T, error)) (*T, error) {
	if b, ok := c.store.Get(ctx, key); ok {
		v := new(T)
		if err := json.Unmarshal(b, v); err == nil {
			return v, nil
		}
		slog.Warn("cache: dropping undecodable entry", "key", key)
	}

	// The shared fetch must not die with whichever caller happened to start it.
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}

		if b, err := json.Marshal(v); err == nil {
			c.store.Set(loadCtx, key, b)
		}
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}
