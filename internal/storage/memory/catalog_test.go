package memory

import (
	"context"
	"errors"
	"testing"

	"elegante_hospedagem/internal/domain"
)

func TestCatalogGetRoom(t *testing.T) {
	c := New(SeedRooms())

	r, err := c.GetRoom(context.Background(), "1")
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if r.Name != "Suíte Premium com Vista para o Mar" || r.Price != 850 {
		t.Fatalf("unexpected room: %+v", r)
	}

	_, err = c.GetRoom(context.Background(), "99")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCatalogListRooms_SeedOrder(t *testing.T) {
	c := New(SeedRooms())
	rooms, err := c.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	if len(rooms) != 4 {
		t.Fatalf("len = %d, want 4", len(rooms))
	}
	for i, want := range []string{"1", "2", "3", "4"} {
		if rooms[i].ID != want {
			t.Fatalf("rooms[%d].ID = %s, want %s", i, rooms[i].ID, want)
		}
	}
}

func TestCatalogReadsAreCopies(t *testing.T) {
	c := New(SeedRooms())
	r, _ := c.GetRoom(context.Background(), "2")
	r.Price = 1
	r.Amenities[0].Name = "mutated"

	again, _ := c.GetRoom(context.Background(), "2")
	if again.Price != 620 || again.Amenities[0].Name != "Wi-Fi" {
		t.Fatalf("catalog record was mutated through a read copy: %+v", again)
	}
}

func TestCatalogSetAvailable(t *testing.T) {
	c := New(SeedRooms())
	if err := c.SetAvailable(context.Background(), "1", false); err != nil {
		t.Fatalf("set available: %v", err)
	}
	r, _ := c.GetRoom(context.Background(), "1")
	if r.Available {
		t.Fatalf("room 1 should be unavailable")
	}

	if err := c.SetAvailable(context.Background(), "99", true); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
