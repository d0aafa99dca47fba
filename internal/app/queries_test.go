package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"elegante_hospedagem/internal/domain"
	"elegante_hospedagem/internal/storage/memory"
)

// ---- fakes ----

type countingCatalog struct {
	domain.RoomCatalog
	gets  int
	lists int
}

func (c *countingCatalog) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	c.gets++
	return c.RoomCatalog.GetRoom(ctx, id)
}

func (c *countingCatalog) ListRooms(ctx context.Context) ([]domain.Room, error) {
	c.lists++
	return c.RoomCatalog.ListRooms(ctx)
}

type mapCache struct {
	data map[string][]byte
	sets int
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.sets++
	c.data[key] = b
	return nil
}

func (c *mapCache) Del(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

// ---- tests ----

func TestGetRoom_ReadThrough(t *testing.T) {
	catalog := &countingCatalog{RoomCatalog: memory.New(memory.SeedRooms())}
	cache := newMapCache()
	s := NewCatalogService(catalog, cache, time.Minute)
	ctx := context.Background()

	r, err := s.GetRoom(ctx, "1")
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if r.Price != 850 || catalog.gets != 1 || cache.sets != 1 {
		t.Fatalf("first read: price=%.2f gets=%d sets=%d", r.Price, catalog.gets, cache.sets)
	}

	r, err = s.GetRoom(ctx, "1")
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if r.Price != 850 || catalog.gets != 1 || cache.hits != 1 {
		t.Fatalf("second read should be a cache hit: gets=%d hits=%d", catalog.gets, cache.hits)
	}
}

func TestGetRoom_NotFoundIsNotCached(t *testing.T) {
	catalog := &countingCatalog{RoomCatalog: memory.New(memory.SeedRooms())}
	cache := newMapCache()
	s := NewCatalogService(catalog, cache, time.Minute)

	if _, err := s.GetRoom(context.Background(), "99"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if cache.sets != 0 {
		t.Fatalf("miss was cached: %d sets", cache.sets)
	}
}

func TestListRooms_SortsWithoutReorderingCache(t *testing.T) {
	catalog := &countingCatalog{RoomCatalog: memory.New(memory.SeedRooms())}
	cache := newMapCache()
	s := NewCatalogService(catalog, cache, time.Minute)
	ctx := context.Background()

	// pets travel: pet-friendly room 2 outranks room 1
	rooms, err := s.ListRooms(ctx, domain.RoomsQuery{Adults: 2, Pets: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rooms[0].ID != "2" {
		t.Fatalf("first = %s, want 2", rooms[0].ID)
	}

	// different query, same cache entry, different order
	rooms, err = s.ListRooms(ctx, domain.RoomsQuery{Adults: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if catalog.lists != 1 {
		t.Fatalf("lists = %d, want 1 (second query served from cache)", catalog.lists)
	}
	if rooms[0].ID != "1" {
		t.Fatalf("first = %s, want 1", rooms[0].ID)
	}
}

func TestListRooms_NoCacheConfigured(t *testing.T) {
	catalog := &countingCatalog{RoomCatalog: memory.New(memory.SeedRooms())}
	s := NewCatalogService(catalog, nil, time.Minute)

	for i := 0; i < 2; i++ {
		rooms, err := s.ListRooms(context.Background(), domain.RoomsQuery{Adults: 1})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rooms) != 4 {
			t.Fatalf("len = %d, want 4", len(rooms))
		}
	}
	if catalog.lists != 2 {
		t.Fatalf("lists = %d, want 2 without a cache", catalog.lists)
	}
}

func TestInvalidate_EvictsListAndRooms(t *testing.T) {
	catalog := &countingCatalog{RoomCatalog: memory.New(memory.SeedRooms())}
	cache := newMapCache()
	s := NewCatalogService(catalog, cache, time.Minute)
	ctx := context.Background()

	_, _ = s.GetRoom(ctx, "1")
	_, _ = s.ListRooms(ctx, domain.RoomsQuery{Adults: 1})

	s.Invalidate(ctx, []string{"1"})

	_, _ = s.GetRoom(ctx, "1")
	_, _ = s.ListRooms(ctx, domain.RoomsQuery{Adults: 1})
	if catalog.gets != 2 || catalog.lists != 2 {
		t.Fatalf("gets=%d lists=%d, want both re-read after invalidation", catalog.gets, catalog.lists)
	}
}
