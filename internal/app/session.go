package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"elegante_hospedagem/internal/adapters/observability"
	"elegante_hospedagem/internal/domain"
)

// draft is a booking configuration being edited for one room, before
// it is submitted into the cart.
type draft struct {
	RoomID string
	Config domain.BookingConfig
}

// session is one visitor's state: the draft under edit, the cart, the
// open checkout and the simulated login. All fields are guarded by mu;
// slow backend calls never run under it.
type session struct {
	id string
	mu sync.Mutex

	loggedIn    bool
	admin       bool
	loginMethod string

	draft *draft
	cart  domain.Cart

	// availability verdicts from the last refresh, by room id
	allAvailable bool
	unavailable  map[string]bool

	checkout *domain.CheckoutSession

	// weight-1: at most one availability refresh in flight
	refreshSem   *semaphore.Weighted
	discountBusy bool
}

func newSession() *session {
	return &session{
		id:           uuid.NewString(),
		allAvailable: true,
		unavailable:  map[string]bool{},
		refreshSem:   semaphore.NewWeighted(1),
	}
}

// SessionService owns every session and exposes the only mutation API
// over them. Tunables mirror the storefront's demo constants.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	queries *CatalogService
	backend domain.Backend
	taxes   float64
	l       zerolog.Logger

	// paymentTimeout bounds the detached payment-resolution call.
	paymentTimeout time.Duration
}

func NewSessionService(q *CatalogService, b domain.Backend, taxes float64, l zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:       map[string]*session{},
		queries:        q,
		backend:        b,
		taxes:          taxes,
		l:              l,
		paymentTimeout: 30 * time.Second,
	}
}

// CreateSession opens a fresh visitor session.
func (s *SessionService) CreateSession() SessionView {
	sn := newSession()
	s.mu.Lock()
	s.sessions[sn.id] = sn
	s.mu.Unlock()
	s.l.Info().Str("session", sn.id).Msg("session created")
	return SessionView{ID: sn.id}
}

func (s *SessionService) get(id string) (*session, error) {
	s.mu.RLock()
	sn, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return sn, nil
}

// Login simulates a social login; google identities get admin rights.
func (s *SessionService) Login(ctx context.Context, id, method string) (SessionView, error) {
	sn, err := s.get(id)
	if err != nil {
		return SessionView{}, err
	}

	admin, err := s.backend.Login(ctx, method)
	if err != nil {
		return SessionView{}, fmt.Errorf("login via %s: %w", method, err)
	}

	sn.mu.Lock()
	sn.loggedIn = true
	sn.admin = admin
	sn.loginMethod = method
	view := sn.viewLocked()
	sn.mu.Unlock()

	s.l.Info().Str("session", id).Str("method", method).Bool("admin", admin).Msg("login ok")
	return view, nil
}

// StartDraft begins configuring a room. Unavailable rooms cannot be
// reserved, matching the disabled reserve button on the card.
func (s *SessionService) StartDraft(ctx context.Context, id, roomID string, main domain.DateRange) (DraftView, error) {
	sn, err := s.get(id)
	if err != nil {
		return DraftView{}, err
	}
	room, err := s.queries.GetRoom(ctx, roomID)
	if err != nil {
		return DraftView{}, err
	}
	if !room.Available {
		return DraftView{}, fmt.Errorf("room %s: %w", roomID, domain.ErrUnavailable)
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	sn.draft = &draft{
		RoomID: roomID,
		Config: domain.NewBookingConfig(2, 0, 0, main),
	}
	return draftView(sn.draft), nil
}

// DraftPatch carries the optional fields of a draft update; nil fields
// are left untouched. Count changes resize the roster synchronously.
type DraftPatch struct {
	Adults             *int
	Children           *int
	Pets               *int
	UseIndividualDates *bool
	MainDateRange      *domain.DateRange
}

func (s *SessionService) UpdateDraft(_ context.Context, id string, p DraftPatch) (DraftView, error) {
	sn, err := s.get(id)
	if err != nil {
		return DraftView{}, err
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.draft == nil {
		return DraftView{}, domain.ErrNoDraft
	}
	cfg := &sn.draft.Config

	if p.Adults != nil || p.Children != nil || p.Pets != nil {
		adults, children, pets := cfg.Adults, cfg.Children, cfg.Pets
		if p.Adults != nil {
			adults = *p.Adults
		}
		if p.Children != nil {
			children = *p.Children
		}
		if p.Pets != nil {
			pets = *p.Pets
		}
		cfg.SetCounts(adults, children, pets)
	}
	if p.UseIndividualDates != nil {
		cfg.SetIndividualDates(*p.UseIndividualDates)
	}
	if p.MainDateRange != nil {
		cfg.SetMainDateRange(*p.MainDateRange)
	}
	return draftView(sn.draft), nil
}

// UpdateDraftGuest renames a guest and/or sets their individual range.
func (s *SessionService) UpdateDraftGuest(_ context.Context, id, guestID string, name *string, rng *domain.DateRange) (DraftView, error) {
	sn, err := s.get(id)
	if err != nil {
		return DraftView{}, err
	}

	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.draft == nil {
		return DraftView{}, domain.ErrNoDraft
	}
	cfg := &sn.draft.Config
	if name != nil {
		if err := cfg.SetGuestName(guestID, *name); err != nil {
			return DraftView{}, fmt.Errorf("guest %s: %w", guestID, err)
		}
	}
	if rng != nil {
		if err := cfg.SetGuestDateRange(guestID, *rng); err != nil {
			return DraftView{}, fmt.Errorf("guest %s: %w", guestID, err)
		}
	}
	return draftView(sn.draft), nil
}

// SubmitDraft snapshots the draft into the cart. With directCheckout
// the item becomes a transient cart entry and checkout opens at once.
func (s *SessionService) SubmitDraft(ctx context.Context, id string, directCheckout bool) (CartView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CartView{}, err
	}

	sn.mu.Lock()
	if sn.draft == nil {
		sn.mu.Unlock()
		return CartView{}, domain.ErrNoDraft
	}
	roomID := sn.draft.RoomID
	sn.mu.Unlock()

	// Snapshot the current catalog state, not the state at draft start.
	room, err := s.queries.GetRoom(ctx, roomID)
	if err != nil {
		return CartView{}, err
	}

	sn.mu.Lock()
	if sn.draft == nil {
		sn.mu.Unlock()
		return CartView{}, domain.ErrNoDraft
	}
	it := sn.cart.Add(room, sn.draft.Config)
	sn.draft = nil
	if directCheckout {
		sn.checkout = domain.NewCheckoutSession(sn.cart.TotalPrice(), s.taxes)
	}
	view := s.cartViewLocked(sn)
	sn.mu.Unlock()

	observability.ObserveCart("add")
	s.l.Info().Str("session", id).Str("item", it.ID).Str("room", roomID).Bool("direct", directCheckout).Msg("added to cart")
	return view, nil
}

func (s *SessionService) Cart(id string) (CartView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CartView{}, err
	}
	sn.mu.Lock()
	defer sn.mu.Unlock()
	return s.cartViewLocked(sn), nil
}

// RemoveItem drops a cart item; absent ids are a no-op.
func (s *SessionService) RemoveItem(id, itemID string) (CartView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CartView{}, err
	}
	sn.mu.Lock()
	defer sn.mu.Unlock()
	sn.cart.Remove(itemID)
	observability.ObserveCart("remove")
	return s.cartViewLocked(sn), nil
}

func (s *SessionService) ClearCart(id string) (CartView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CartView{}, err
	}
	sn.mu.Lock()
	defer sn.mu.Unlock()
	sn.cart.Clear()
	sn.unavailable = map[string]bool{}
	sn.allAvailable = true
	observability.ObserveCart("clear")
	return s.cartViewLocked(sn), nil
}

// RefreshAvailability cross-checks the cart against the live catalog
// via the backend. At most one refresh per session is in flight; a
// concurrent call reports ErrRefreshInFlight instead of interleaving.
func (s *SessionService) RefreshAvailability(ctx context.Context, id string) (CartView, error) {
	sn, err := s.get(id)
	if err != nil {
		return CartView{}, err
	}

	if !sn.refreshSem.TryAcquire(1) {
		return CartView{}, domain.ErrRefreshInFlight
	}
	defer sn.refreshSem.Release(1)

	sn.mu.Lock()
	ids := sn.cart.RoomIDs()
	sn.mu.Unlock()
	if len(ids) == 0 {
		sn.mu.Lock()
		defer sn.mu.Unlock()
		return s.cartViewLocked(sn), nil
	}

	verdict, err := s.backend.CheckAvailability(ctx, ids)
	if err != nil {
		return CartView{}, fmt.Errorf("check availability: %w", err)
	}
	s.queries.Invalidate(ctx, ids)

	sn.mu.Lock()
	defer sn.mu.Unlock()
	sn.unavailable = map[string]bool{}
	all := true
	for _, it := range sn.cart.Items {
		avail, known := verdict[it.Room.ID]
		if !known {
			// item added while the refresh was running; count it in
			// the next refresh, not this one
			continue
		}
		if !avail {
			sn.unavailable[it.Room.ID] = true
			all = false
		}
	}
	sn.allAvailable = all
	observability.ObserveCart("refresh")
	if !all {
		s.l.Warn().Str("session", id).Int("rooms", len(sn.unavailable)).Msg("availability changed")
	}
	return s.cartViewLocked(sn), nil
}
