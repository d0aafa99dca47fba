package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"elegante_hospedagem/internal/adapters/observability"
	"elegante_hospedagem/internal/domain"
)

// Options tune the simulated backend. Zero delays and a fixed Rand make
// it deterministic for tests.
type Options struct {
	AvailabilityDelay time.Duration
	PaymentDelay      time.Duration
	DiscountDelay     time.Duration
	LoginDelay        time.Duration

	// CardSuccessRate is the probability a card payment is approved.
	// PIX always succeeds.
	CardSuccessRate float64

	// DiscountAmount is granted for any coupon code.
	DiscountAmount float64

	// DropRooms are forced unavailable on every availability check,
	// exercising the "availability changed" path of the storefront.
	DropRooms []string

	// RPS caps outbound call pressure client-side.
	RPS int

	Rand *rand.Rand
}

// Backend stands in for the availability service, the payment provider,
// the coupon service and the identity provider. All calls honor context
// cancellation so an abandoned session discards the result instead of
// applying it.
type Backend struct {
	catalog domain.RoomCatalog
	opts    Options
	rl      *rate.Limiter

	mu  sync.Mutex // guards rnd
	rnd *rand.Rand
}

func New(catalog domain.RoomCatalog, opts Options) *Backend {
	if opts.CardSuccessRate == 0 {
		opts.CardSuccessRate = 0.8
	}
	if opts.RPS <= 0 {
		opts.RPS = 20
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Backend{
		catalog: catalog,
		opts:    opts,
		rl:      rate.NewLimiter(rate.Limit(opts.RPS), opts.RPS),
		rnd:     rnd,
	}
}

func (b *Backend) CheckAvailability(ctx context.Context, roomIDs []string) (map[string]bool, error) {
	start := time.Now()
	if err := b.call(ctx, b.opts.AvailabilityDelay); err != nil {
		observability.ObserveBackend("availability", "error", time.Since(start))
		return nil, err
	}

	// The demo backend flips the scripted rooms off before answering.
	for _, id := range b.opts.DropRooms {
		if err := b.catalog.SetAvailable(ctx, id, false); err != nil && !isNotFound(err) {
			observability.ObserveBackend("availability", "error", time.Since(start))
			return nil, err
		}
	}

	out := make(map[string]bool, len(roomIDs))
	for _, id := range roomIDs {
		r, err := b.catalog.GetRoom(ctx, id)
		if err != nil {
			if isNotFound(err) {
				out[id] = false
				continue
			}
			observability.ObserveBackend("availability", "error", time.Since(start))
			return nil, err
		}
		out[id] = r.Available
	}
	observability.ObserveBackend("availability", "ok", time.Since(start))
	return out, nil
}

func (b *Backend) ResolvePayment(ctx context.Context, method domain.PaymentMethod) (bool, string, error) {
	start := time.Now()
	if err := b.call(ctx, b.opts.PaymentDelay); err != nil {
		observability.ObserveBackend("payment", "error", time.Since(start))
		return false, "", err
	}

	approved := true
	if method == domain.MethodCard {
		b.mu.Lock()
		approved = b.rnd.Float64() < b.opts.CardSuccessRate
		b.mu.Unlock()
	}
	if !approved {
		observability.ObserveBackend("payment", "declined", time.Since(start))
		return false, "", nil
	}

	b.mu.Lock()
	ref := fmt.Sprintf("EH%06d", 100000+b.rnd.Intn(900000))
	b.mu.Unlock()
	observability.ObserveBackend("payment", "ok", time.Since(start))
	return true, ref, nil
}

func (b *Backend) ValidateDiscount(ctx context.Context, code string) (float64, error) {
	start := time.Now()
	if err := b.call(ctx, b.opts.DiscountDelay); err != nil {
		observability.ObserveBackend("discount", "error", time.Since(start))
		return 0, err
	}
	// Every code passes in this demo; amount is fixed, not a percentage.
	_ = code
	observability.ObserveBackend("discount", "ok", time.Since(start))
	return b.opts.DiscountAmount, nil
}

func (b *Backend) Login(ctx context.Context, method string) (bool, error) {
	start := time.Now()
	if err := b.call(ctx, b.opts.LoginDelay); err != nil {
		observability.ObserveBackend("login", "error", time.Since(start))
		return false, err
	}
	observability.ObserveBackend("login", "ok", time.Since(start))
	return strings.EqualFold(method, "google"), nil
}

// call applies rate limiting plus the simulated network round-trip.
func (b *Backend) call(ctx context.Context, delay time.Duration) error {
	if err := b.rl.Wait(ctx); err != nil {
		return err
	}
	if delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
