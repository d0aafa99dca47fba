package domain_test

import (
	"testing"
	"time"

	"elegante_hospedagem/internal/domain"
)

func day(d int) *time.Time {
	t := time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func rng(from, to int) domain.DateRange {
	return domain.DateRange{From: day(from), To: day(to)}
}

func TestNewBookingConfig_RosterMatchesCounts(t *testing.T) {
	c := domain.NewBookingConfig(2, 1, 0, rng(15, 20))
	if got := len(c.Guests); got != 3 {
		t.Fatalf("guests = %d, want 3", got)
	}
	for i, g := range c.Guests {
		if g.ID == "" {
			t.Fatalf("guest %d has empty id", i)
		}
		if !g.DateRange.IsSet() {
			t.Fatalf("guest %d should inherit the shared range", i)
		}
	}
}

func TestSetCounts_GrowPreservesExistingGuests(t *testing.T) {
	c := domain.NewBookingConfig(2, 0, 0, rng(15, 20))
	_ = c.SetGuestName(c.Guests[0].ID, "Ana")
	_ = c.SetGuestName(c.Guests[1].ID, "Bruno")
	id0, id1 := c.Guests[0].ID, c.Guests[1].ID

	c.SetCounts(3, 1, 0)
	if got := len(c.Guests); got != 4 {
		t.Fatalf("guests = %d, want 4", got)
	}
	if c.Guests[0].ID != id0 || c.Guests[0].Name != "Ana" {
		t.Fatalf("main guest lost identity: %+v", c.Guests[0])
	}
	if c.Guests[1].ID != id1 || c.Guests[1].Name != "Bruno" {
		t.Fatalf("second guest lost identity: %+v", c.Guests[1])
	}
}

func TestSetCounts_ShrinkPrunesFromTail(t *testing.T) {
	c := domain.NewBookingConfig(3, 1, 0, rng(15, 20))
	_ = c.SetGuestName(c.Guests[0].ID, "Ana")
	_ = c.SetGuestName(c.Guests[3].ID, "Último")

	c.SetCounts(1, 1, 0)
	if got := len(c.Guests); got != 2 {
		t.Fatalf("guests = %d, want 2", got)
	}
	if c.Guests[0].Name != "Ana" {
		t.Fatalf("main guest should survive the shrink, got %q", c.Guests[0].Name)
	}
}

func TestSetCounts_AdultsFloorIsOne(t *testing.T) {
	c := domain.NewBookingConfig(2, 0, 0, domain.DateRange{})
	c.SetCounts(0, 0, -1)
	if c.Adults != 1 || c.Pets != 0 {
		t.Fatalf("adults=%d pets=%d, want 1 and 0", c.Adults, c.Pets)
	}
	if len(c.Guests) != 1 {
		t.Fatalf("guests = %d, want 1", len(c.Guests))
	}
}

func TestSetMainDateRange_PropagatesInSharedMode(t *testing.T) {
	c := domain.NewBookingConfig(2, 1, 0, domain.DateRange{})
	c.SetMainDateRange(rng(10, 12))
	for i, g := range c.Guests {
		if !g.DateRange.IsSet() || g.DateRange.From.Day() != 10 || g.DateRange.To.Day() != 12 {
			t.Fatalf("guest %d range not propagated: %+v", i, g.DateRange)
		}
	}
}

func TestSetMainDateRange_CopiesByValue(t *testing.T) {
	c := domain.NewBookingConfig(2, 0, 0, domain.DateRange{})
	c.SetMainDateRange(rng(10, 12))

	// editing one guest's range must not leak into the other
	c.SetIndividualDates(true)
	if err := c.SetGuestDateRange(c.Guests[0].ID, rng(1, 2)); err != nil {
		t.Fatalf("set range: %v", err)
	}
	if c.Guests[1].DateRange.From.Day() != 10 {
		t.Fatalf("ranges alias: %+v", c.Guests[1].DateRange)
	}
	if c.MainDateRange.From.Day() != 10 {
		t.Fatalf("main range mutated: %+v", c.MainDateRange)
	}
}

func TestToggleIndividualDates_FalseIsDestructiveSync(t *testing.T) {
	c := domain.NewBookingConfig(3, 0, 0, rng(15, 20))
	c.SetIndividualDates(true)
	for _, g := range c.Guests {
		_ = c.SetGuestDateRange(g.ID, rng(1, 3))
	}

	c.SetIndividualDates(false)
	for i, g := range c.Guests {
		if g.DateRange.From.Day() != 15 || g.DateRange.To.Day() != 20 {
			t.Fatalf("guest %d kept individual range after collapse: %+v", i, g.DateRange)
		}
	}
}

func TestToggleIndividualDates_TrueKeepsLastSyncedRanges(t *testing.T) {
	c := domain.NewBookingConfig(2, 0, 0, rng(15, 20))
	c.SetIndividualDates(true)
	for i, g := range c.Guests {
		if g.DateRange.From.Day() != 15 {
			t.Fatalf("guest %d lost synced range on toggle: %+v", i, g.DateRange)
		}
	}
}

func TestSetGuestName_UnknownID(t *testing.T) {
	c := domain.NewBookingConfig(1, 0, 0, domain.DateRange{})
	if err := c.SetGuestName("nope", "Ana"); err == nil {
		t.Fatalf("expected error for unknown guest id")
	}
}

func TestResizeSeedsRangeByMode(t *testing.T) {
	c := domain.NewBookingConfig(1, 0, 0, rng(15, 20))

	c.SetCounts(2, 0, 0)
	if !c.Guests[1].DateRange.IsSet() {
		t.Fatalf("shared mode: new guest should inherit the main range")
	}

	c.SetIndividualDates(true)
	c.SetCounts(3, 0, 0)
	if c.Guests[2].DateRange.IsSet() {
		t.Fatalf("individual mode: new guest should start with an unset range")
	}
}

func TestDateRangeNights(t *testing.T) {
	cases := []struct {
		name string
		r    domain.DateRange
		want int
	}{
		{"unset", domain.DateRange{}, 0},
		{"pending", domain.DateRange{From: day(15)}, 0},
		{"five nights", rng(15, 20), 5},
		{"one night", rng(15, 16), 1},
		{"reversed clamps", rng(20, 15), 0},
	}
	for _, tc := range cases {
		if got := tc.r.Nights(); got != tc.want {
			t.Errorf("%s: nights = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDateRangeNights_PartialDayRoundsUp(t *testing.T) {
	from := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
	r := domain.DateRange{From: &from, To: &to}
	if got := r.Nights(); got != 2 {
		t.Fatalf("nights = %d, want 2 (partial day rounds up)", got)
	}
}
