package snapshot

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedStore is a read-through cache in front of another Store. Renderers
// hit the same snapshot repeatedly right after an upload, so recent reads are
// served from memory.
type CachedStore struct {
	next  Store
	cache *gocache.Cache
}

// NewCachedStore caches snapshots for ttl. A non-positive ttl disables the
// cache and returns next unchanged.
func NewCachedStore(next Store, ttl time.Duration) Store {
	if ttl <= 0 {
		return next
	}
	return &CachedStore{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *CachedStore) Put(ctx context.Context, id string, snap *Snapshot) error {
	if err := s.next.Put(ctx, id, snap); err != nil {
		return err
	}
	s.cache.SetDefault(id, snap)
	return nil
}

func (s *CachedStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	if v, ok := s.cache.Get(id); ok {
		return v.(*Snapshot), nil
	}
	snap, err := s.next.Get(ctx, id)
	if err != nil || snap == nil {
		return snap, err
	}
	s.cache.SetDefault(id, snap)
	return snap, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	s.cache.Delete(id)
	return s.next.Delete(ctx, id)
}
