package reservations

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/guests"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/ui"
	"github.com/maresia/maresia/internal/view"
)

// GuestSource lists guests for the reservation form lookup.
type GuestSource interface {
	List(ctx context.Context, filters guests.ListFilters) ([]guests.Guest, error)
}

// AccommodationSource lists accommodations for the reservation form lookup.
type AccommodationSource interface {
	ListAccommodations(ctx context.Context, propertyID string, filters lodging.ListFilters) ([]lodging.Accommodation, error)
}

type Handler struct {
	logger         *slog.Logger
	service        *Service
	guests         GuestSource
	accommodations AccommodationSource
	templates      *view.Engine
	csrf           *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, guestSource GuestSource, accSource AccommodationSource, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		guests:         guestSource,
		accommodations: accSource,
		templates:      templates,
		csrf:           csrf,
	}
}

// MountRoutes registers reservation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/nova", h.NewForm)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Post("/{id}/check-in", h.CheckIn)
	r.Post("/{id}/check-out", h.CheckOut)
	r.Post("/{id}/cancelar", h.Cancel)
	r.Post("/{id}/folio/lancamentos", h.AddEntry)
	r.Post("/{id}/folio/lancamentos/{entryID}", h.UpdateEntry)
	r.Post("/{id}/folio/lancamentos/{entryID}/excluir", h.DeleteEntry)
	r.Post("/{id}/folio/pagamentos", h.AddPayment)
}

type listRow struct {
	Reservation Reservation
	Badge       ui.Badge
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	filters := ListFilters{
		Status: r.URL.Query().Get("status"),
		Guest:  r.URL.Query().Get("guest"),
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
		Page:   page,
	}
	items, err := h.service.List(api.RequestContext(r), filters)
	if err != nil {
		h.logger.Error("list reservations failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar as reservas")
		return
	}
	rows := make([]listRow, 0, len(items))
	for _, res := range items {
		rows = append(rows, listRow{Reservation: res, Badge: StatusBadge(res.Status)})
	}
	h.render(w, r, "pages/reservations_list.html", "Reservas", map[string]any{
		"Rows":    rows,
		"Filters": filters,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.service.Get(api.RequestContext(r), id)
	if err != nil {
		h.logger.Error("get reservation failed", slog.Any("error", err), slog.String("id", id))
		h.renderError(w, r, "Reserva não encontrada")
		return
	}
	h.render(w, r, "pages/reservation_detail.html", "Reserva "+detail.Code, map[string]any{
		"Reservation": detail,
		"Badge":       StatusBadge(detail.Status),
		"Balance":     Balance(detail.Entries, detail.Payments),
		"CanCheckIn":  CanTransition(detail.Status, StatusCheckedIn),
		"CanCheckOut": CanTransition(detail.Status, StatusCheckedOut),
		"CanCancel":   CanTransition(detail.Status, StatusCanceled),
		"EntryForm":   EntryForm{},
		"PaymentForm": PaymentForm{},
	})
}

func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderNewForm(w, r, Form{}, map[string]string{})
}

func (h *Handler) renderNewForm(w http.ResponseWriter, r *http.Request, form Form, errs map[string]string) {
	ctx := api.RequestContext(r)
	guestList, err := h.guests.List(ctx, guests.ListFilters{})
	if err != nil {
		h.renderError(w, r, "Não foi possível carregar os hóspedes")
		return
	}
	var accList []lodging.Accommodation
	if sess := shared.SessionFromContext(r.Context()); sess != nil && sess.Property() != "" {
		accList, err = h.accommodations.ListAccommodations(ctx, sess.Property(), lodging.ListFilters{})
		if err != nil {
			h.renderError(w, r, "Não foi possível carregar as acomodações")
			return
		}
	}
	h.render(w, r, "pages/reservation_form.html", "Nova reserva", map[string]any{
		"Form":           form,
		"Errors":         errs,
		"Guests":         guestList,
		"Accommodations": accList,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseForm(r)
	if len(errs) > 0 {
		h.renderNewForm(w, r, form, errs)
		return
	}
	created, err := h.service.Create(api.RequestContext(r), form.Input())
	if err != nil {
		h.flashError(r, err, "Falha ao criar reserva")
		h.renderNewForm(w, r, form, map[string]string{})
		return
	}
	h.flashSuccess(r, "Reserva criada")
	http.Redirect(w, r, "/reservas/"+created.ID, http.StatusSeeOther)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "check-in realizado", func(ctx context.Context, res Reservation) error {
		return h.service.CheckIn(ctx, res)
	})
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, "check-out realizado", func(ctx context.Context, res Reservation) error {
		return h.service.CheckOut(ctx, res)
	})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/reservas/"+chi.URLParam(r, "id"), http.StatusSeeOther)
		return
	}
	h.runTransition(w, r, "reserva cancelada", func(ctx context.Context, res Reservation) error {
		return h.service.Cancel(ctx, res)
	})
}

func (h *Handler) runTransition(w http.ResponseWriter, r *http.Request, success string, action func(context.Context, Reservation) error) {
	id := chi.URLParam(r, "id")
	ctx := api.RequestContext(r)
	detail, err := h.service.Get(ctx, id)
	if err != nil {
		h.flashError(r, err, "Reserva não encontrada")
		http.Redirect(w, r, "/reservas", http.StatusSeeOther)
		return
	}
	if err := action(ctx, detail.Reservation); err != nil {
		h.flashError(r, err, "Ação não permitida para o status atual")
	} else {
		h.flashSuccess(r, success)
	}
	http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
}

func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseEntryForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	input, err := form.Input()
	if err != nil {
		h.flashError(r, err, "Lançamento inválido")
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	if err := h.service.AddEntry(api.RequestContext(r), id, input); err != nil {
		h.flashError(r, err, "Falha ao lançar no fólio")
	} else {
		h.flashSuccess(r, "Lançamento adicionado")
	}
	http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseEntryForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	input, err := form.Input()
	if err != nil {
		h.flashError(r, err, "Lançamento inválido")
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	if err := h.service.UpdateEntry(api.RequestContext(r), id, entryID, input); err != nil {
		h.flashError(r, err, "Falha ao editar lançamento")
	} else {
		h.flashSuccess(r, "Lançamento atualizado")
	}
	http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entryID := chi.URLParam(r, "entryID")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	if err := h.service.DeleteEntry(api.RequestContext(r), id, entryID); err != nil {
		h.flashError(r, err, "Falha ao excluir lançamento")
	} else {
		h.flashSuccess(r, "Lançamento excluído")
	}
	http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParsePaymentForm(r)
	if len(errs) > 0 {
		h.flashError(r, nil, firstError(errs))
		http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
		return
	}
	if err := h.service.AddPayment(api.RequestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao registrar pagamento")
	} else {
		h.flashSuccess(r, "Pagamento registrado")
	}
	http.Redirect(w, r, "/reservas/"+id, http.StatusSeeOther)
}

func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "dados inválidos"
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	if err := h.templates.Page(w, r, h.csrf, name, title, data); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, message string) {
	if err := h.templates.Fail(w, r, h.csrf, message); err != nil {
		http.Error(w, message, http.StatusInternalServerError)
	}
}

func (h *Handler) flashSuccess(r *http.Request, message string) {
	shared.Flash(r.Context(), shared.FlashSuccess, message)
}

func (h *Handler) flashError(r *http.Request, err error, fallback string) {
	shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, fallback))
}
