package domain

// Quote is the priced view of one booking configuration. TotalNights of
// zero means no guest has a complete range yet; DisplayPrice then falls
// back to the bare nightly rate so the UI never shows R$ 0,00.
type Quote struct {
	TotalNights int
	TotalPrice  float64
	NightlyRate float64
}

// DisplayPrice is what a renderer should show for this quote.
func (q Quote) DisplayPrice() float64 {
	if q.TotalNights == 0 {
		return q.NightlyRate
	}
	return q.TotalPrice
}

// QuoteConfig prices a configuration against a nightly rate.
//
// Individual mode sums each guest's own night count; guests without a
// complete range contribute nothing. Shared mode multiplies the main
// range's nights by the roster size. Reversed ranges clamp to zero
// nights rather than producing a negative total.
func QuoteConfig(c BookingConfig, nightly float64) Quote {
	nights := 0
	if c.UseIndividualDates {
		for _, g := range c.Guests {
			nights += g.DateRange.Nights()
		}
	} else if c.MainDateRange.IsSet() {
		nights = c.MainDateRange.Nights() * len(c.Guests)
	}
	return Quote{
		TotalNights: nights,
		TotalPrice:  nightly * float64(nights),
		NightlyRate: nightly,
	}
}

// QuoteItem prices one cart item against its snapshotted room rate.
func QuoteItem(it CartItem) Quote {
	return QuoteConfig(it.Details, it.Room.Price)
}
