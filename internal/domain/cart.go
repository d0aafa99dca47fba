package domain

import "github.com/google/uuid"

// CartItem is one configured booking pending checkout. Room is a
// point-in-time snapshot, not a live catalog reference; staleness is
// reconciled only by an explicit availability refresh.
type CartItem struct {
	ID      string
	Room    Room
	Details BookingConfig
}

// Cart is an ordered collection of cart items. It is a plain value
// owned by the session; concurrency control lives with the owner.
type Cart struct {
	Items []CartItem
}

// Add snapshots the room and configuration and appends a new item.
// The same room may appear any number of times.
func (c *Cart) Add(room Room, details BookingConfig) CartItem {
	it := CartItem{
		ID:      uuid.NewString(),
		Room:    room.Clone(),
		Details: details.Clone(),
	}
	c.Items = append(c.Items, it)
	return it
}

// Remove drops the matching item; absent ids are a no-op.
func (c *Cart) Remove(id string) {
	for i, it := range c.Items {
		if it.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) Len() int { return len(c.Items) }

// TotalPrice sums the item quotes. Recomputed on demand, never cached.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, it := range c.Items {
		total += QuoteItem(it).TotalPrice
	}
	return total
}

// RoomIDs lists the distinct snapshotted room ids, in insertion order.
func (c *Cart) RoomIDs() []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range c.Items {
		if !seen[it.Room.ID] {
			seen[it.Room.ID] = true
			out = append(out, it.Room.ID)
		}
	}
	return out
}
