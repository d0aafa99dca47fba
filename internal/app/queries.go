package app

import (
	"context"
	"fmt"
	"time"

	"elegante_hospedagem/internal/domain"
)

const roomListKey = "rooms:all"

// CatalogService serves the room read path through a cache. The cached
// listing is query-independent; relevance sorting happens after the
// cache read so one entry serves every guest selection.
type CatalogService struct {
	catalog  domain.RoomCatalog
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(c domain.RoomCatalog, cache domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{catalog: c, cache: cache, cacheTTL: ttl}
}

func (s *CatalogService) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	key := fmt.Sprintf("room:%s", id)
	if s.cache != nil {
		var r domain.Room
		if ok, _ := s.cache.Get(ctx, key, &r); ok {
			return r, nil
		}
	}
	r, err := s.catalog.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	}
	return r, nil
}

func (s *CatalogService) ListRooms(ctx context.Context, q domain.RoomsQuery) ([]domain.Room, error) {
	var rooms []domain.Room
	hit := false
	if s.cache != nil {
		hit, _ = s.cache.Get(ctx, roomListKey, &rooms)
	}
	if !hit {
		var err error
		rooms, err = s.catalog.ListRooms(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, roomListKey, rooms, int(s.cacheTTL.Seconds()))
		}
	}

	// copy before sorting so a cached backing array is never reordered
	out := make([]domain.Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.Clone()
	}
	domain.SortRooms(out, q)
	return out, nil
}

// Invalidate evicts the listing and the given room entries. Called
// after an availability refresh flips catalog flags.
func (s *CatalogService) Invalidate(ctx context.Context, roomIDs []string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, roomListKey)
	for _, id := range roomIDs {
		_ = s.cache.Del(ctx, fmt.Sprintf("room:%s", id))
	}
}
