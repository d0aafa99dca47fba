package domain

import (
	"fmt"
	"time"
)

type CheckoutStep string

const (
	StepReview     CheckoutStep = "review"
	StepPayment    CheckoutStep = "payment"
	StepProcessing CheckoutStep = "processing"
	StepFailed     CheckoutStep = "failed"
	StepSuccess    CheckoutStep = "success"
)

type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodPix  PaymentMethod = "pix"
)

// CardForm carries the card fields exactly as submitted; the demo
// backend never validates them. Cleared on retry after a failure.
type CardForm struct {
	Number       string
	Name         string
	Expiry       string
	CVC          string
	Installments int
}

// CheckoutSession is the REVIEW→PAYMENT→PROCESSING→{SUCCESS,FAILED}
// machine plus the order totals shown along the way. SUCCESS is
// terminal; FAILED is recoverable via Retry or Restart.
type CheckoutSession struct {
	Step            CheckoutStep
	Subtotal        float64
	Taxes           float64
	Discount        float64
	DiscountApplied bool

	Method  PaymentMethod
	Card    CardForm
	Attempt int // guards stale async completions

	BookingRef  string
	ConfirmedAt time.Time
}

// NewCheckoutSession opens checkout at the review step for the given
// subtotal. Taxes are a fixed amount in this demo.
func NewCheckoutSession(subtotal, taxes float64) *CheckoutSession {
	return &CheckoutSession{Step: StepReview, Subtotal: subtotal, Taxes: taxes}
}

// Total is always subtotal - discount + taxes, recomputed on read.
func (s *CheckoutSession) Total() float64 {
	var d float64
	if s.DiscountApplied {
		d = s.Discount
	}
	return s.Subtotal - d + s.Taxes
}

func (s *CheckoutSession) badStep(op string) error {
	return fmt.Errorf("%s from step %q: %w", op, s.Step, ErrBadTransition)
}

// MarkDiscount records an accepted discount code. Only meaningful while
// reviewing, and at most once.
func (s *CheckoutSession) MarkDiscount(amount float64) error {
	if s.Step != StepReview {
		return s.badStep("apply discount")
	}
	if s.DiscountApplied {
		return ErrDiscountApplied
	}
	s.Discount = amount
	s.DiscountApplied = true
	return nil
}

// Continue moves REVIEW→PAYMENT.
func (s *CheckoutSession) Continue() error {
	if s.Step != StepReview {
		return s.badStep("continue")
	}
	s.Step = StepPayment
	return nil
}

// Back moves PAYMENT→REVIEW.
func (s *CheckoutSession) Back() error {
	if s.Step != StepPayment {
		return s.badStep("go back")
	}
	s.Step = StepReview
	return nil
}

// BeginProcessing moves PAYMENT→PROCESSING for the given method and
// opens a new attempt. The caller owns resolving the attempt.
func (s *CheckoutSession) BeginProcessing(method PaymentMethod, card CardForm) (attempt int, err error) {
	if s.Step != StepPayment {
		return 0, s.badStep("submit payment")
	}
	s.Method = method
	if method == MethodCard {
		s.Card = card
	}
	s.Attempt++
	s.Step = StepProcessing
	return s.Attempt, nil
}

// ResolveProcessing applies an async payment outcome. Outcomes from a
// superseded attempt, or arriving after the machine left PROCESSING,
// are discarded rather than applied to stale state.
func (s *CheckoutSession) ResolveProcessing(attempt int, approved bool, ref string, at time.Time) bool {
	if s.Step != StepProcessing || attempt != s.Attempt {
		return false
	}
	if approved {
		s.Step = StepSuccess
		s.BookingRef = ref
		s.ConfirmedAt = at
	} else {
		s.Step = StepFailed
	}
	return true
}

// Retry moves FAILED→PAYMENT and clears the card form.
func (s *CheckoutSession) Retry() error {
	if s.Step != StepFailed {
		return s.badStep("retry")
	}
	s.Card = CardForm{}
	s.Step = StepPayment
	return nil
}

// Restart moves FAILED→REVIEW to pick another method.
func (s *CheckoutSession) Restart() error {
	if s.Step != StepFailed {
		return s.badStep("restart")
	}
	s.Step = StepReview
	return nil
}
