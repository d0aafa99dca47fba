package domain_test

import (
	"errors"
	"testing"
	"time"

	"elegante_hospedagem/internal/domain"
)

func TestCheckoutHappyPathCard(t *testing.T) {
	s := domain.NewCheckoutSession(1500, 120)
	if s.Step != domain.StepReview {
		t.Fatalf("step = %s, want review", s.Step)
	}
	if err := s.Continue(); err != nil {
		t.Fatalf("continue: %v", err)
	}
	attempt, err := s.BeginProcessing(domain.MethodCard, domain.CardForm{Number: "4111111111111111", Name: "Ana"})
	if err != nil {
		t.Fatalf("begin processing: %v", err)
	}
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if !s.ResolveProcessing(attempt, true, "EH123456", at) {
		t.Fatalf("resolve discarded a live attempt")
	}
	if s.Step != domain.StepSuccess || s.BookingRef != "EH123456" || !s.ConfirmedAt.Equal(at) {
		t.Fatalf("bad terminal state: %+v", s)
	}
}

func TestCheckoutTotal(t *testing.T) {
	s := domain.NewCheckoutSession(1500, 120)
	if got := s.Total(); got != 1620 {
		t.Fatalf("total = %.2f, want 1620", got)
	}
	if err := s.MarkDiscount(150); err != nil {
		t.Fatalf("mark discount: %v", err)
	}
	if got := s.Total(); got != 1470 {
		t.Fatalf("total after discount = %.2f, want 1470", got)
	}
}

func TestCheckoutDiscountOnlyOnceAndOnlyInReview(t *testing.T) {
	s := domain.NewCheckoutSession(1000, 120)
	if err := s.MarkDiscount(150); err != nil {
		t.Fatalf("first discount: %v", err)
	}
	if err := s.MarkDiscount(150); !errors.Is(err, domain.ErrDiscountApplied) {
		t.Fatalf("second discount err = %v, want ErrDiscountApplied", err)
	}
	_ = s.Continue()
	s2 := domain.NewCheckoutSession(1000, 120)
	_ = s2.Continue()
	if err := s2.MarkDiscount(150); !errors.Is(err, domain.ErrBadTransition) {
		t.Fatalf("discount at payment err = %v, want ErrBadTransition", err)
	}
}

func TestCheckoutBackAndForth(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	if err := s.Back(); !errors.Is(err, domain.ErrBadTransition) {
		t.Fatalf("back from review err = %v, want ErrBadTransition", err)
	}
	_ = s.Continue()
	if err := s.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if s.Step != domain.StepReview {
		t.Fatalf("step = %s, want review", s.Step)
	}
}

func TestCheckoutFailureThenRetryClearsCard(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	_ = s.Continue()
	attempt, _ := s.BeginProcessing(domain.MethodCard, domain.CardForm{Number: "4111111111111111", CVC: "123"})
	s.ResolveProcessing(attempt, false, "", time.Time{})
	if s.Step != domain.StepFailed {
		t.Fatalf("step = %s, want failed", s.Step)
	}
	if err := s.Retry(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.Step != domain.StepPayment {
		t.Fatalf("step = %s, want payment", s.Step)
	}
	if s.Card != (domain.CardForm{}) {
		t.Fatalf("retry must clear the card form: %+v", s.Card)
	}
}

func TestCheckoutFailureThenRestart(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	_ = s.Continue()
	attempt, _ := s.BeginProcessing(domain.MethodPix, domain.CardForm{})
	s.ResolveProcessing(attempt, false, "", time.Time{})
	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Step != domain.StepReview {
		t.Fatalf("step = %s, want review", s.Step)
	}
}

func TestResolveProcessing_DiscardsStaleAttempt(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	_ = s.Continue()
	first, _ := s.BeginProcessing(domain.MethodCard, domain.CardForm{})
	s.ResolveProcessing(first, false, "", time.Time{})
	_ = s.Retry()
	second, _ := s.BeginProcessing(domain.MethodCard, domain.CardForm{})

	// the first attempt's outcome arrives late
	if s.ResolveProcessing(first, true, "EH000001", time.Now()) {
		t.Fatalf("stale attempt was applied")
	}
	if s.Step != domain.StepProcessing {
		t.Fatalf("step = %s, want processing", s.Step)
	}
	if !s.ResolveProcessing(second, true, "EH000002", time.Now()) {
		t.Fatalf("live attempt was discarded")
	}
	if s.BookingRef != "EH000002" {
		t.Fatalf("ref = %q, want EH000002", s.BookingRef)
	}
}

func TestResolveProcessing_IgnoredOutsideProcessing(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	if s.ResolveProcessing(1, true, "EH000003", time.Now()) {
		t.Fatalf("resolve applied outside processing")
	}
}

func TestCheckoutSuccessIsTerminal(t *testing.T) {
	s := domain.NewCheckoutSession(500, 120)
	_ = s.Continue()
	attempt, _ := s.BeginProcessing(domain.MethodPix, domain.CardForm{})
	s.ResolveProcessing(attempt, true, "EH424242", time.Now())
	if err := s.Retry(); !errors.Is(err, domain.ErrBadTransition) {
		t.Fatalf("retry after success err = %v, want ErrBadTransition", err)
	}
	if err := s.Continue(); !errors.Is(err, domain.ErrBadTransition) {
		t.Fatalf("continue after success err = %v, want ErrBadTransition", err)
	}
}
