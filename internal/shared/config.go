package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	// simulated backend latencies
	AvailabilityDelay time.Duration
	PaymentDelay      time.Duration
	DiscountDelay     time.Duration
	LoginDelay        time.Duration

	CardSuccessRate float64
	DiscountAmount  float64
	Taxes           float64

	PromoTitle    string
	PromoDeadline time.Time

	SimWorkers  int
	SimSessions int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	ms := func(k string, def int) time.Duration {
		return time.Duration(atoi(k, def)) * time.Millisecond
	}

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,

		AvailabilityDelay: ms("AVAILABILITY_DELAY_MS", 1500),
		PaymentDelay:      ms("PAYMENT_DELAY_MS", 3000),
		DiscountDelay:     ms("DISCOUNT_DELAY_MS", 1500),
		LoginDelay:        ms("LOGIN_DELAY_MS", 1500),

		CardSuccessRate: atof("CARD_SUCCESS_RATE", 0.8),
		DiscountAmount:  atof("DISCOUNT_AMOUNT", 150),
		Taxes:           atof("ORDER_TAXES", 120),

		PromoTitle: env("PROMO_TITLE", "Reveillon"),

		SimWorkers:  atoi("SIM_WORKERS", 8),
		SimSessions: atoi("SIM_SESSIONS", 50),
	}

	if dl := env("PROMO_DEADLINE", ""); dl != "" {
		t, err := time.Parse(time.RFC3339, dl)
		if err != nil {
			log.Warn().Str("value", dl).Msg("PROMO_DEADLINE is not RFC3339; using default")
		} else {
			c.PromoDeadline = t
		}
	}
	if c.PromoDeadline.IsZero() {
		// next new year's eve
		now := time.Now()
		c.PromoDeadline = time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
	}

	if c.CardSuccessRate <= 0 || c.CardSuccessRate > 1 {
		log.Warn().Float64("rate", c.CardSuccessRate).Msg("CARD_SUCCESS_RATE out of (0,1]; using 0.8")
		c.CardSuccessRate = 0.8
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
