package domain

import "time"

// Promo is a time-boxed offer banner with a countdown.
type Promo struct {
	Title    string
	Deadline time.Time
}

// PromoCountdown is a point-in-time breakdown of the remaining window.
type PromoCountdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Active  bool
}

// Countdown derives the remaining time at now. Expired promos report
// all zeros and Active=false; callers poll instead of keeping a ticker.
func (p Promo) Countdown(now time.Time) PromoCountdown {
	left := p.Deadline.Sub(now)
	if left <= 0 {
		return PromoCountdown{}
	}
	secs := int(left / time.Second)
	return PromoCountdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
		Active:  true,
	}
}
