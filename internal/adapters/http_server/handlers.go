package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"elegante_hospedagem/internal/app"
	"elegante_hospedagem/internal/domain"
)

type Handlers struct {
	S     *app.SessionService
	Q     *app.CatalogService
	Promo domain.Promo
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/rooms/{id}", h.getRoom)
	s.mux.Get("/v1/promo", h.getPromo)

	s.mux.Post("/v1/sessions", h.createSession)
	s.mux.Post("/v1/sessions/{id}/login", h.login)

	s.mux.Post("/v1/sessions/{id}/draft", h.startDraft)
	s.mux.Patch("/v1/sessions/{id}/draft", h.patchDraft)
	s.mux.Patch("/v1/sessions/{id}/draft/guests/{gid}", h.patchDraftGuest)
	s.mux.Post("/v1/sessions/{id}/draft/submit", h.submitDraft)

	s.mux.Get("/v1/sessions/{id}/cart", h.getCart)
	s.mux.Delete("/v1/sessions/{id}/cart", h.clearCart)
	s.mux.Delete("/v1/sessions/{id}/cart/items/{itemID}", h.removeItem)
	s.mux.Post("/v1/sessions/{id}/cart/refresh", h.refreshCart)

	s.mux.Post("/v1/sessions/{id}/checkout", h.beginCheckout)
	s.mux.Get("/v1/sessions/{id}/checkout", h.getCheckout)
	s.mux.Post("/v1/sessions/{id}/checkout/discount", h.applyDiscount)
	s.mux.Post("/v1/sessions/{id}/checkout/continue", h.continueCheckout)
	s.mux.Post("/v1/sessions/{id}/checkout/back", h.backCheckout)
	s.mux.Post("/v1/sessions/{id}/checkout/pay", h.pay)
	s.mux.Post("/v1/sessions/{id}/checkout/retry", h.retryCheckout)
	s.mux.Post("/v1/sessions/{id}/checkout/restart", h.restartCheckout)
	s.mux.Post("/v1/sessions/{id}/checkout/complete", h.completeCheckout)
}

// ---- error and body plumbing ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNoDraft),
		errors.Is(err, domain.ErrNoCheckout):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrBadTransition),
		errors.Is(err, domain.ErrDiscountApplied),
		errors.Is(err, domain.ErrDiscountInFlight),
		errors.Is(err, domain.ErrRefreshInFlight):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return false
	}
	return true
}

// ---- DTOs ----

const dateLayout = "2006-01-02"

type dateRangeDTO struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

func (d *dateRangeDTO) toDomain() (domain.DateRange, error) {
	var out domain.DateRange
	if d.From != nil {
		t, err := time.Parse(dateLayout, *d.From)
		if err != nil {
			return out, err
		}
		out.From = &t
	}
	if d.To != nil {
		t, err := time.Parse(dateLayout, *d.To)
		if err != nil {
			return out, err
		}
		out.To = &t
	}
	return out, nil
}

func rangeDTO(r domain.DateRange) dateRangeDTO {
	var out dateRangeDTO
	if r.From != nil {
		s := r.From.Format(dateLayout)
		out.From = &s
	}
	if r.To != nil {
		s := r.To.Format(dateLayout)
		out.To = &s
	}
	return out
}

type mediaDTO struct {
	Type      string `json:"type"`
	Src       string `json:"src"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type amenityDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type roomDTO struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Media       []mediaDTO   `json:"media"`
	Price       float64      `json:"price"`
	PriceUnit   string       `json:"priceUnit"`
	Available   bool         `json:"available"`
	MaxGuests   int          `json:"maxGuests"`
	Amenities   []amenityDTO `json:"amenities"`
}

func toRoomDTO(r domain.Room) roomDTO {
	out := roomDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		PriceUnit:   r.PriceUnit,
		Available:   r.Available,
		MaxGuests:   r.MaxGuests,
	}
	for _, m := range r.Media {
		out.Media = append(out.Media, mediaDTO{Type: string(m.Type), Src: m.Src, Thumbnail: m.Thumbnail})
	}
	for _, a := range r.Amenities {
		out.Amenities = append(out.Amenities, amenityDTO{ID: a.ID, Name: a.Name, Icon: a.Icon})
	}
	return out
}

type guestDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	DateRange dateRangeDTO `json:"dateRange"`
}

type configDTO struct {
	Adults             int          `json:"adults"`
	Children           int          `json:"children"`
	Pets               int          `json:"pets"`
	UseIndividualDates bool         `json:"useIndividualDates"`
	MainDateRange      dateRangeDTO `json:"mainDateRange"`
	Guests             []guestDTO   `json:"guests"`
}

func toConfigDTO(c domain.BookingConfig) configDTO {
	out := configDTO{
		Adults:             c.Adults,
		Children:           c.Children,
		Pets:               c.Pets,
		UseIndividualDates: c.UseIndividualDates,
		MainDateRange:      rangeDTO(c.MainDateRange),
	}
	for _, g := range c.Guests {
		out.Guests = append(out.Guests, guestDTO{ID: g.ID, Name: g.Name, DateRange: rangeDTO(g.DateRange)})
	}
	return out
}

type draftDTO struct {
	RoomID string    `json:"roomId"`
	Config configDTO `json:"config"`
}

type cartItemDTO struct {
	ID           string    `json:"id"`
	Room         roomDTO   `json:"room"`
	Details      configDTO `json:"details"`
	TotalNights  int       `json:"totalNights"`
	TotalPrice   float64   `json:"totalPrice"`
	DisplayPrice float64   `json:"displayPrice"`
	Available    bool      `json:"available"`
}

type cartDTO struct {
	Items        []cartItemDTO `json:"items"`
	TotalPrice   float64       `json:"totalPrice"`
	AllAvailable bool          `json:"allAvailable"`
}

func toCartDTO(v app.CartView) cartDTO {
	out := cartDTO{TotalPrice: v.TotalPrice, AllAvailable: v.AllAvailable, Items: []cartItemDTO{}}
	for _, it := range v.Items {
		out.Items = append(out.Items, cartItemDTO{
			ID:           it.Item.ID,
			Room:         toRoomDTO(it.Item.Room),
			Details:      toConfigDTO(it.Item.Details),
			TotalNights:  it.Quote.TotalNights,
			TotalPrice:   it.Quote.TotalPrice,
			DisplayPrice: it.Quote.DisplayPrice(),
			Available:    it.Available,
		})
	}
	return out
}

type checkoutDTO struct {
	Step            string  `json:"step"`
	Subtotal        float64 `json:"subtotal"`
	Taxes           float64 `json:"taxes"`
	Discount        float64 `json:"discount"`
	DiscountApplied bool    `json:"discountApplied"`
	Total           float64 `json:"total"`
	Method          string  `json:"method,omitempty"`
	Installments    int     `json:"installments,omitempty"`
	BookingRef      string  `json:"bookingRef,omitempty"`
	ConfirmedAt     string  `json:"confirmedAt,omitempty"`
}

func toCheckoutDTO(v app.CheckoutView) checkoutDTO {
	return checkoutDTO{
		Step:            string(v.Step),
		Subtotal:        v.Subtotal,
		Taxes:           v.Taxes,
		Discount:        v.Discount,
		DiscountApplied: v.DiscountApplied,
		Total:           v.Total,
		Method:          string(v.Method),
		Installments:    v.Installments,
		BookingRef:      v.BookingRef,
		ConfirmedAt:     v.ConfirmedAt,
	}
}

// ---- catalog ----

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	q := domain.RoomsQuery{Adults: queryInt(r, "adults", 2), Children: queryInt(r, "children", 0), Pets: queryInt(r, "pets", 0)}
	rooms, err := h.Q.ListRooms(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomDTO(room))
	}
	writeJSON(w, http.StatusOK, out)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.Q.GetRoom(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

func (h *Handlers) getPromo(w http.ResponseWriter, r *http.Request) {
	cd := h.Promo.Countdown(time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"title":    h.Promo.Title,
		"deadline": h.Promo.Deadline.UTC().Format(time.RFC3339),
		"days":     cd.Days,
		"hours":    cd.Hours,
		"minutes":  cd.Minutes,
		"seconds":  cd.Seconds,
		"active":   cd.Active,
	})
}

// ---- session ----

func (h *Handlers) createSession(w http.ResponseWriter, r *http.Request) {
	v := h.S.CreateSession()
	writeJSON(w, http.StatusCreated, map[string]any{"id": v.ID})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method string `json:"method"`
	}
	if !decode(w, r, &body) {
		return
	}
	v, err := h.S.Login(r.Context(), chi.URLParam(r, "id"), body.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"loggedIn": v.LoggedIn, "admin": v.Admin, "method": v.LoginMethod})
}

// ---- draft ----

func (h *Handlers) startDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID        string        `json:"roomId"`
		MainDateRange *dateRangeDTO `json:"mainDateRange,omitempty"`
	}
	if !decode(w, r, &body) {
		return
	}
	var main domain.DateRange
	if body.MainDateRange != nil {
		var err error
		main, err = body.MainDateRange.toDomain()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
	}
	v, err := h.S.StartDraft(r.Context(), chi.URLParam(r, "id"), body.RoomID, main)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draftDTO{RoomID: v.RoomID, Config: toConfigDTO(v.Config)})
}

func (h *Handlers) patchDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Adults             *int          `json:"adults,omitempty"`
		Children           *int          `json:"children,omitempty"`
		Pets               *int          `json:"pets,omitempty"`
		UseIndividualDates *bool         `json:"useIndividualDates,omitempty"`
		MainDateRange      *dateRangeDTO `json:"mainDateRange,omitempty"`
	}
	if !decode(w, r, &body) {
		return
	}
	patch := app.DraftPatch{
		Adults:             body.Adults,
		Children:           body.Children,
		Pets:               body.Pets,
		UseIndividualDates: body.UseIndividualDates,
	}
	if body.MainDateRange != nil {
		rng, err := body.MainDateRange.toDomain()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		patch.MainDateRange = &rng
	}
	v, err := h.S.UpdateDraft(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftDTO{RoomID: v.RoomID, Config: toConfigDTO(v.Config)})
}

func (h *Handlers) patchDraftGuest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      *string       `json:"name,omitempty"`
		DateRange *dateRangeDTO `json:"dateRange,omitempty"`
	}
	if !decode(w, r, &body) {
		return
	}
	var rng *domain.DateRange
	if body.DateRange != nil {
		parsed, err := body.DateRange.toDomain()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Date", err.Error())
			return
		}
		rng = &parsed
	}
	v, err := h.S.UpdateDraftGuest(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "gid"), body.Name, rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draftDTO{RoomID: v.RoomID, Config: toConfigDTO(v.Config)})
}

func (h *Handlers) submitDraft(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Checkout bool `json:"checkout"`
	}
	// empty body means a plain add-to-cart
	_ = json.NewDecoder(r.Body).Decode(&body)

	v, err := h.S.SubmitDraft(r.Context(), chi.URLParam(r, "id"), body.Checkout)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartDTO(v))
}

// ---- cart ----

func (h *Handlers) getCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.S.Cart(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(v))
}

func (h *Handlers) clearCart(w http.ResponseWriter, r *http.Request) {
	if _, err := h.S.ClearCart(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removeItem(w http.ResponseWriter, r *http.Request) {
	// removing an absent item is still a 204
	if _, err := h.S.RemoveItem(chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) refreshCart(w http.ResponseWriter, r *http.Request) {
	v, err := h.S.RefreshAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(v))
}

// ---- checkout ----

func (h *Handlers) beginCheckout(w http.ResponseWriter, r *http.Request) {
	v, err := h.S.BeginCheckout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCheckoutDTO(v))
}

func (h *Handlers) getCheckout(w http.ResponseWriter, r *http.Request) {
	v, err := h.S.Checkout(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutDTO(v))
}

func (h *Handlers) applyDiscount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if !decode(w, r, &body) {
		return
	}
	if len(body.Code) < 3 {
		writeProblem(w, http.StatusBadRequest, "Invalid Code", "discount code must have at least 3 characters")
		return
	}
	v, err := h.S.ApplyDiscount(r.Context(), chi.URLParam(r, "id"), body.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutDTO(v))
}

func (h *Handlers) continueCheckout(w http.ResponseWriter, r *http.Request) {
	h.stepHandler(w, r, h.S.ContinueToPayment)
}

func (h *Handlers) backCheckout(w http.ResponseWriter, r *http.Request) {
	h.stepHandler(w, r, h.S.BackToReview)
}

func (h *Handlers) retryCheckout(w http.ResponseWriter, r *http.Request) {
	h.stepHandler(w, r, h.S.RetryPayment)
}

func (h *Handlers) restartCheckout(w http.ResponseWriter, r *http.Request) {
	h.stepHandler(w, r, h.S.RestartCheckout)
}

func (h *Handlers) completeCheckout(w http.ResponseWriter, r *http.Request) {
	h.stepHandler(w, r, h.S.CompleteCheckout)
}

func (h *Handlers) stepHandler(w http.ResponseWriter, r *http.Request, fn func(string) (app.CheckoutView, error)) {
	v, err := fn(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutDTO(v))
}

func (h *Handlers) pay(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method       string `json:"method"`
		CardNumber   string `json:"cardNumber,omitempty"`
		CardName     string `json:"cardName,omitempty"`
		Expiry       string `json:"expiry,omitempty"`
		CVC          string `json:"cvc,omitempty"`
		Installments int    `json:"installments,omitempty"`
	}
	if !decode(w, r, &body) {
		return
	}

	var method domain.PaymentMethod
	switch body.Method {
	case "card":
		method = domain.MethodCard
	case "pix":
		method = domain.MethodPix
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid Method", "method must be card or pix")
		return
	}

	card := domain.CardForm{
		Number:       body.CardNumber,
		Name:         body.CardName,
		Expiry:       body.Expiry,
		CVC:          body.CVC,
		Installments: body.Installments,
	}
	if method == domain.MethodCard {
		if len(card.Number) < 16 {
			writeProblem(w, http.StatusBadRequest, "Invalid Card", "card number must have at least 16 digits")
			return
		}
		if card.Installments < 1 || card.Installments > 6 {
			card.Installments = 1
		}
	}

	v, err := h.S.SubmitPayment(r.Context(), chi.URLParam(r, "id"), method, card)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toCheckoutDTO(v))
}
