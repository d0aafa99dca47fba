package app

import (
	"context"
	"fmt"
	"time"

	"elegante_hospedagem/internal/adapters/observability"
	"elegante_hospedagem/internal/domain"
)

// BeginCheckout opens the review step over the current cart. An empty
// cart or a cart with unavailable items cannot reach checkout.
func (s *SessionService) BeginCheckout(_ context.Context, id string) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.cart.Len() == 0 {
		return CheckoutView{}, domain.ErrEmptyCart
	}
	if !sn.allAvailable {
		return CheckoutView{}, domain.ErrUnavailable
	}
	sn.checkout = domain.NewCheckoutSession(sn.cart.TotalPrice(), s.taxes)
	s.l.Info().Str("session", id).Float64("subtotal", sn.checkout.Subtotal).Msg("checkout opened")
	return checkoutView(sn.checkout), nil
}

func (s *SessionService) Checkout(id string) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.checkout == nil {
		return CheckoutView{}, domain.ErrNoCheckout
	}
	return checkoutView(sn.checkout), nil
}

// ApplyDiscount validates a coupon with the backend and records it.
// Only one application may be in flight; only one ever succeeds.
func (s *SessionService) ApplyDiscount(ctx context.Context, id, code string) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}

	sn.mu.Lock()
	if sn.checkout == nil {
		sn.mu.Unlock()
		return CheckoutView{}, domain.ErrNoCheckout
	}
	if sn.checkout.Step != domain.StepReview {
		sn.mu.Unlock()
		return CheckoutView{}, fmt.Errorf("apply discount from step %q: %w", sn.checkout.Step, domain.ErrBadTransition)
	}
	if sn.checkout.DiscountApplied {
		sn.mu.Unlock()
		return CheckoutView{}, domain.ErrDiscountApplied
	}
	if sn.discountBusy {
		sn.mu.Unlock()
		return CheckoutView{}, domain.ErrDiscountInFlight
	}
	sn.discountBusy = true
	sn.mu.Unlock()

	amount, err := s.backend.ValidateDiscount(ctx, code)

	sn.mu.Lock()
	defer sn.mu.Unlock()
	sn.discountBusy = false
	if err != nil {
		return CheckoutView{}, fmt.Errorf("validate discount: %w", err)
	}
	if sn.checkout == nil {
		// checkout closed while validating; discard the result
		return CheckoutView{}, domain.ErrNoCheckout
	}
	if err := sn.checkout.MarkDiscount(amount); err != nil {
		return CheckoutView{}, err
	}
	s.l.Info().Str("session", id).Float64("discount", amount).Msg("discount applied")
	return checkoutView(sn.checkout), nil
}

// ContinueToPayment moves REVIEW→PAYMENT.
func (s *SessionService) ContinueToPayment(id string) (CheckoutView, error) {
	return s.step(id, func(c *domain.CheckoutSession) error { return c.Continue() })
}

// BackToReview moves PAYMENT→REVIEW.
func (s *SessionService) BackToReview(id string) (CheckoutView, error) {
	return s.step(id, func(c *domain.CheckoutSession) error { return c.Back() })
}

// RetryPayment moves FAILED→PAYMENT with a cleared card form.
func (s *SessionService) RetryPayment(id string) (CheckoutView, error) {
	return s.step(id, func(c *domain.CheckoutSession) error { return c.Retry() })
}

// RestartCheckout moves FAILED→REVIEW to pick another method.
func (s *SessionService) RestartCheckout(id string) (CheckoutView, error) {
	return s.step(id, func(c *domain.CheckoutSession) error { return c.Restart() })
}

func (s *SessionService) step(id string, fn func(*domain.CheckoutSession) error) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.checkout == nil {
		return CheckoutView{}, domain.ErrNoCheckout
	}
	if err := fn(sn.checkout); err != nil {
		return CheckoutView{}, err
	}
	return checkoutView(sn.checkout), nil
}

// SubmitPayment moves PAYMENT→PROCESSING and resolves the attempt in
// the background. The returned view shows the processing step; the
// outcome lands on the session when the provider answers, and a stale
// answer (superseded attempt, closed checkout) is discarded.
func (s *SessionService) SubmitPayment(_ context.Context, id string, method domain.PaymentMethod, card domain.CardForm) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}

	sn.mu.Lock()
	if sn.checkout == nil {
		sn.mu.Unlock()
		return CheckoutView{}, domain.ErrNoCheckout
	}
	attempt, err := sn.checkout.BeginProcessing(method, card)
	if err != nil {
		sn.mu.Unlock()
		return CheckoutView{}, err
	}
	view := checkoutView(sn.checkout)
	sn.mu.Unlock()

	go s.resolvePayment(sn, attempt, method)

	s.l.Info().Str("session", id).Str("method", string(method)).Int("attempt", attempt).Msg("payment processing")
	return view, nil
}

// resolvePayment runs detached from the submitting request so the
// machine is never stuck in PROCESSING because a client went away.
func (s *SessionService) resolvePayment(sn *session, attempt int, method domain.PaymentMethod) {
	ctx, cancel := context.WithTimeout(context.Background(), s.paymentTimeout)
	defer cancel()

	approved, ref, err := s.backend.ResolvePayment(ctx, method)
	if err != nil {
		// a transport failure is a declined attempt as far as the
		// visitor is concerned; they can retry from FAILED
		s.l.Error().Str("session", sn.id).Err(err).Msg("payment resolution failed")
		approved = false
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.checkout == nil {
		return
	}
	if !sn.checkout.ResolveProcessing(attempt, approved, ref, time.Now()) {
		s.l.Warn().Str("session", sn.id).Int("attempt", attempt).Msg("stale payment outcome discarded")
		return
	}
	outcome := "failed"
	if approved {
		outcome = "success"
	}
	observability.ObserveCheckout(string(method), outcome)
	s.l.Info().Str("session", sn.id).Str("method", string(method)).Str("outcome", outcome).Msg("payment resolved")
}

// CompleteCheckout leaves a successful checkout: the cart is cleared
// and the checkout session closed.
func (s *SessionService) CompleteCheckout(id string) (CheckoutView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CheckoutView{}, err
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.checkout == nil {
		return CheckoutView{}, domain.ErrNoCheckout
	}
	if sn.checkout.Step != domain.StepSuccess {
		return CheckoutView{}, fmt.Errorf("complete from step %q: %w", sn.checkout.Step, domain.ErrBadTransition)
	}
	view := checkoutView(sn.checkout)
	sn.cart.Clear()
	sn.unavailable = map[string]bool{}
	sn.allAvailable = true
	sn.checkout = nil
	observability.ObserveCart("clear")
	s.l.Info().Str("session", id).Str("ref", view.BookingRef).Msg("checkout completed")
	return view, nil
}
