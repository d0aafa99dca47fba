package main

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"elegante_hospedagem/internal/adapters/observability"
	"elegante_hospedagem/internal/adapters/simulator"
	"elegante_hospedagem/internal/app"
	"elegante_hospedagem/internal/domain"
	"elegante_hospedagem/internal/shared"
	"elegante_hospedagem/internal/storage/memory"
)

// Drives full guest sessions (configure → cart → refresh → checkout)
// against the in-process services, bounded by a worker pool. Useful for
// smoke-testing the flow and eyeballing outcome ratios.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("sessions", cfg.SimSessions).
		Int("workers", cfg.SimWorkers).
		Float64("card_success_rate", cfg.CardSuccessRate).
		Msg("simulator starting")

	catalog := memory.New(memory.SeedRooms())
	backend := simulator.New(catalog, simulator.Options{
		AvailabilityDelay: cfg.AvailabilityDelay / 10,
		PaymentDelay:      cfg.PaymentDelay / 10,
		DiscountDelay:     cfg.DiscountDelay / 10,
		CardSuccessRate:   cfg.CardSuccessRate,
		DiscountAmount:    cfg.DiscountAmount,
		DropRooms:         []string{"3"},
		RPS:               100,
	})
	q := app.NewCatalogService(catalog, nil, cfg.CacheTTL)
	sessions := app.NewSessionService(q, backend, cfg.Taxes, log.Logger)

	sem := semaphore.NewWeighted(int64(cfg.SimWorkers))
	var wg sync.WaitGroup
	var succeeded, failed, blocked int64

	for i := 0; i < cfg.SimSessions; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			defer sem.Release(1)

			switch runSession(ctx, sessions, n) {
			case domain.StepSuccess:
				atomic.AddInt64(&succeeded, 1)
			case domain.StepFailed:
				atomic.AddInt64(&failed, 1)
			default:
				atomic.AddInt64(&blocked, 1)
			}
		}(i)
	}

	wg.Wait()
	log.Info().
		Int64("succeeded", succeeded).
		Int64("failed", failed).
		Int64("blocked", blocked).
		Msg("simulation completed")
}

// runSession walks one visitor through the storefront. Rooms cycle
// through the open catalog; room "3" stays out since it is the one the
// backend keeps flipping unavailable.
func runSession(ctx context.Context, s *app.SessionService, n int) domain.CheckoutStep {
	rooms := []string{"1", "2", "4"}
	roomID := rooms[n%len(rooms)]

	sv := s.CreateSession()
	id := sv.ID

	from := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 3)
	main := domain.DateRange{From: &from, To: &to}

	if _, err := s.StartDraft(ctx, id, roomID, main); err != nil {
		log.Warn().Str("session", id).Err(err).Msg("start draft failed")
		return ""
	}
	adults, children := 2, n%2
	if _, err := s.UpdateDraft(ctx, id, app.DraftPatch{Adults: &adults, Children: &children}); err != nil {
		log.Warn().Str("session", id).Err(err).Msg("update draft failed")
		return ""
	}
	if _, err := s.SubmitDraft(ctx, id, false); err != nil {
		log.Warn().Str("session", id).Err(err).Msg("submit draft failed")
		return ""
	}
	if _, err := s.RefreshAvailability(ctx, id); err != nil {
		log.Warn().Str("session", id).Err(err).Msg("refresh failed")
		return ""
	}
	if _, err := s.BeginCheckout(ctx, id); err != nil {
		log.Warn().Str("session", id).Err(err).Msg("begin checkout failed")
		return ""
	}
	if n%3 == 0 {
		if _, err := s.ApplyDiscount(ctx, id, "REVEILLON"); err != nil {
			log.Warn().Str("session", id).Err(err).Msg("discount failed")
		}
	}
	if _, err := s.ContinueToPayment(id); err != nil {
		return ""
	}

	method := domain.MethodCard
	card := domain.CardForm{Number: "4111111111111111", Name: "Visitante Teste", Expiry: "12/30", CVC: "123", Installments: 1}
	if n%4 == 0 {
		method = domain.MethodPix
		card = domain.CardForm{}
	}
	if _, err := s.SubmitPayment(ctx, id, method, card); err != nil {
		return ""
	}

	// poll until the async resolution lands
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		v, err := s.Checkout(id)
		if err != nil {
			return ""
		}
		if v.Step == domain.StepSuccess {
			if _, err := s.CompleteCheckout(id); err != nil {
				log.Warn().Str("session", id).Err(err).Msg("complete failed")
			}
			return domain.StepSuccess
		}
		if v.Step == domain.StepFailed {
			return domain.StepFailed
		}
		time.Sleep(50 * time.Millisecond)
	}
	return domain.StepProcessing
}
