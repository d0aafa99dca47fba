package app

import (
	"time"

	"elegante_hospedagem/internal/domain"
)

// Read models handed to the transport layer; always copies, never live
// session state.

type SessionView struct {
	ID          string
	LoggedIn    bool
	Admin       bool
	LoginMethod string
}

type DraftView struct {
	RoomID string
	Config domain.BookingConfig
}

type CartItemView struct {
	Item      domain.CartItem
	Quote     domain.Quote
	Available bool
}

type CartView struct {
	Items        []CartItemView
	TotalPrice   float64
	AllAvailable bool
}

type CheckoutView struct {
	Step            domain.CheckoutStep
	Subtotal        float64
	Taxes           float64
	Discount        float64
	DiscountApplied bool
	Total           float64
	Method          domain.PaymentMethod
	Installments    int
	BookingRef      string
	ConfirmedAt     string // RFC3339, empty before confirmation
}

func (sn *session) viewLocked() SessionView {
	return SessionView{
		ID:          sn.id,
		LoggedIn:    sn.loggedIn,
		Admin:       sn.admin,
		LoginMethod: sn.loginMethod,
	}
}

func draftView(d *draft) DraftView {
	return DraftView{RoomID: d.RoomID, Config: d.Config.Clone()}
}

func (s *SessionService) cartViewLocked(sn *session) CartView {
	view := CartView{
		TotalPrice:   sn.cart.TotalPrice(),
		AllAvailable: sn.allAvailable,
	}
	for _, it := range sn.cart.Items {
		view.Items = append(view.Items, CartItemView{
			Item:      it,
			Quote:     domain.QuoteItem(it),
			Available: !sn.unavailable[it.Room.ID],
		})
	}
	return view
}

func checkoutView(c *domain.CheckoutSession) CheckoutView {
	v := CheckoutView{
		Step:            c.Step,
		Subtotal:        c.Subtotal,
		Taxes:           c.Taxes,
		Discount:        c.Discount,
		DiscountApplied: c.DiscountApplied,
		Total:           c.Total(),
		Method:          c.Method,
		Installments:    c.Card.Installments,
		BookingRef:      c.BookingRef,
	}
	if !c.ConfirmedAt.IsZero() {
		v.ConfirmedAt = c.ConfirmedAt.UTC().Format(time.RFC3339)
	}
	return v
}
