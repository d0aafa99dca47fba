package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateRange is an optional stay period. Both fields nil means "unset";
// only From set means "pending". The type does not enforce From < To,
// callers validate and the pricing engine clamps.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (d DateRange) IsSet() bool { return d.From != nil && d.To != nil }

// Nights is the ceil'd day count of the range; partial days round up to
// a full night. Unset or reversed ranges count as zero.
func (d DateRange) Nights() int {
	if !d.IsSet() {
		return 0
	}
	dur := d.To.Sub(*d.From)
	if dur <= 0 {
		return 0
	}
	n := int(dur / (24 * time.Hour))
	if dur%(24*time.Hour) != 0 {
		n++
	}
	return n
}

// clone copies the range by value so later edits never alias.
func (d DateRange) clone() DateRange {
	out := DateRange{}
	if d.From != nil {
		f := *d.From
		out.From = &f
	}
	if d.To != nil {
		t := *d.To
		out.To = &t
	}
	return out
}

// Guest is one occupant of a booking. ID is stable across edits; an
// empty Name renders as "Hóspede N" at the display layer.
type Guest struct {
	ID        string
	Name      string
	DateRange DateRange
}

// BookingConfig is the guest/date configuration built for one room.
// Invariant after every mutation: len(Guests) == Adults+Children.
// When UseIndividualDates is false every guest's range mirrors
// MainDateRange; when true MainDateRange is ignored for pricing.
type BookingConfig struct {
	Adults             int
	Children           int
	Pets               int
	UseIndividualDates bool
	MainDateRange      DateRange
	Guests             []Guest
}

// NewBookingConfig seeds a shared-date configuration with the given
// counts. Adults below 1 are raised to 1.
func NewBookingConfig(adults, children, pets int, main DateRange) BookingConfig {
	if adults < 1 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}
	if pets < 0 {
		pets = 0
	}
	c := BookingConfig{
		Adults:        adults,
		Children:      children,
		Pets:          pets,
		MainDateRange: main.clone(),
	}
	c.resize()
	return c
}

// SetCounts updates adults/children/pets and re-sizes the roster.
// Growth appends fresh guests at the tail; shrinkage prunes from the
// tail so earlier guests (the main guest first of all) survive.
func (c *BookingConfig) SetCounts(adults, children, pets int) {
	if adults < 1 {
		adults = 1
	}
	if children < 0 {
		children = 0
	}
	if pets < 0 {
		pets = 0
	}
	c.Adults, c.Children, c.Pets = adults, children, pets
	c.resize()
}

func (c *BookingConfig) resize() {
	target := c.Adults + c.Children
	if len(c.Guests) > target {
		c.Guests = c.Guests[:target]
		return
	}
	for len(c.Guests) < target {
		g := Guest{ID: uuid.NewString()}
		if !c.UseIndividualDates {
			g.DateRange = c.MainDateRange.clone()
		}
		c.Guests = append(c.Guests, g)
	}
}

// SetMainDateRange replaces the shared range. In shared mode the new
// range is propagated to every guest by value before any pricing read.
func (c *BookingConfig) SetMainDateRange(r DateRange) {
	c.MainDateRange = r.clone()
	if !c.UseIndividualDates {
		c.propagate()
	}
}

func (c *BookingConfig) propagate() {
	for i := range c.Guests {
		c.Guests[i].DateRange = c.MainDateRange.clone()
	}
}

// SetIndividualDates toggles the pricing mode. false→true keeps the
// last-synced ranges as independent starting points; true→false
// destructively re-syncs every guest to MainDateRange.
func (c *BookingConfig) SetIndividualDates(individual bool) {
	c.UseIndividualDates = individual
	if !individual {
		c.propagate()
	}
}

// SetGuestName renames one guest. Empty names are allowed.
// Unknown ids report ErrNotFound.
func (c *BookingConfig) SetGuestName(id, name string) error {
	for i := range c.Guests {
		if c.Guests[i].ID == id {
			c.Guests[i].Name = name
			return nil
		}
	}
	return ErrNotFound
}

// SetGuestDateRange replaces one guest's range. Only meaningful in
// individual mode; in shared mode the next propagation overwrites it.
func (c *BookingConfig) SetGuestDateRange(id string, r DateRange) error {
	for i := range c.Guests {
		if c.Guests[i].ID == id {
			c.Guests[i].DateRange = r.clone()
			return nil
		}
	}
	return ErrNotFound
}

// Clone deep-copies the configuration, guests and ranges included.
func (c BookingConfig) Clone() BookingConfig {
	out := c
	out.MainDateRange = c.MainDateRange.clone()
	if len(c.Guests) > 0 {
		out.Guests = make([]Guest, len(c.Guests))
		for i, g := range c.Guests {
			g.DateRange = g.DateRange.clone()
			out.Guests[i] = g
		}
	}
	return out
}
