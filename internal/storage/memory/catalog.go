package memory

import (
	"context"
	"fmt"
	"sync"

	"elegante_hospedagem/internal/domain"
)

// Catalog is the in-memory room store. Reads return deep copies so
// callers never alias the live records; only SetAvailable mutates.
type Catalog struct {
	mu    sync.RWMutex
	rooms map[string]domain.Room
	order []string
}

func New(rooms []domain.Room) *Catalog {
	c := &Catalog{rooms: make(map[string]domain.Room, len(rooms))}
	for _, r := range rooms {
		if _, dup := c.rooms[r.ID]; !dup {
			c.order = append(c.order, r.ID)
		}
		c.rooms[r.ID] = r.Clone()
	}
	return c
}

func (c *Catalog) GetRoom(_ context.Context, id string) (domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	return r.Clone(), nil
}

func (c *Catalog) ListRooms(_ context.Context) ([]domain.Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Room, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.rooms[id].Clone())
	}
	return out, nil
}

func (c *Catalog) SetAvailable(_ context.Context, id string, available bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[id]
	if !ok {
		return fmt.Errorf("room %s: %w", id, domain.ErrNotFound)
	}
	r.Available = available
	c.rooms[id] = r
	return nil
}
