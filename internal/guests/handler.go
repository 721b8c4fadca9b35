package guests

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/ui"
	"github.com/maresia/maresia/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers guest routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/novo", h.NewForm)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Get("/{id}/editar", h.EditForm)
	r.Post("/{id}", h.Update)
	r.Post("/{id}/blacklist", h.ToggleBlacklist)
}

// Badge maps the blacklist flag for both table and card layouts.
func Badge(blacklisted bool) ui.Badge {
	if blacklisted {
		return ui.Badge{Label: "Blacklist", Variant: ui.VariantDanger}
	}
	return ui.Badge{Label: "Ativo", Variant: ui.VariantSuccess}
}

type listRow struct {
	Guest Guest
	Badge ui.Badge
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	filters := ListFilters{
		Search: r.URL.Query().Get("search"),
		Page:   page,
	}

	guests, err := h.service.List(requestContext(r), filters)
	if err != nil {
		h.logger.Error("list guests failed", slog.Any("error", err))
		h.renderError(w, r, "Não foi possível carregar os hóspedes")
		return
	}

	rows := make([]listRow, 0, len(guests))
	for _, guest := range guests {
		rows = append(rows, listRow{Guest: guest, Badge: Badge(guest.Blacklisted)})
	}

	h.render(w, r, "pages/guests_list.html", "Hóspedes", map[string]any{
		"Rows":    rows,
		"Filters": filters,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	guest, err := h.service.Get(requestContext(r), id)
	if err != nil {
		h.logger.Error("get guest failed", slog.Any("error", err), slog.String("id", id))
		h.renderError(w, r, "Hóspede não encontrado")
		return
	}
	h.render(w, r, "pages/guest_detail.html", guest.FullName, map[string]any{
		"Guest": guest,
		"Badge": Badge(guest.Blacklisted),
	})
}

func (h *Handler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/guest_form.html", "Novo hóspede", map[string]any{
		"Form":   Form{},
		"Errors": map[string]string{},
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/guest_form.html", "Novo hóspede", map[string]any{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	created, err := h.service.Create(requestContext(r), form.Input())
	if err != nil {
		h.flashError(r, err, "Falha ao criar hóspede")
		h.render(w, r, "pages/guest_form.html", "Novo hóspede", map[string]any{
			"Form":   form,
			"Errors": errs,
		})
		return
	}
	h.flashSuccess(r, "Hóspede criado")
	http.Redirect(w, r, "/hospedes/"+created.ID, http.StatusSeeOther)
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	guest, err := h.service.Get(requestContext(r), id)
	if err != nil {
		h.renderError(w, r, "Hóspede não encontrado")
		return
	}
	h.render(w, r, "pages/guest_form.html", "Editar hóspede", map[string]any{
		"Form":   formFromGuest(guest),
		"Errors": map[string]string{},
		"ID":     id,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form, errs := ParseForm(r)
	if len(errs) > 0 {
		h.render(w, r, "pages/guest_form.html", "Editar hóspede", map[string]any{
			"Form":   form,
			"Errors": errs,
			"ID":     id,
		})
		return
	}

	if err := h.service.Update(requestContext(r), id, form.Input()); err != nil {
		h.flashError(r, err, "Falha ao salvar hóspede")
		http.Redirect(w, r, "/hospedes/"+id+"/editar", http.StatusSeeOther)
		return
	}
	h.flashSuccess(r, "Hóspede atualizado")
	http.Redirect(w, r, "/hospedes/"+id, http.StatusSeeOther)
}

func (h *Handler) ToggleBlacklist(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "1" {
		h.flashError(r, nil, "Confirmação necessária")
		http.Redirect(w, r, "/hospedes/"+id, http.StatusSeeOther)
		return
	}
	blacklisted := r.PostFormValue("blacklisted") == "1"
	if err := h.service.SetBlacklist(requestContext(r), id, blacklisted); err != nil {
		h.flashError(r, err, "Falha ao atualizar blacklist")
	} else if blacklisted {
		h.flashSuccess(r, "Hóspede adicionado à blacklist")
	} else {
		h.flashSuccess(r, "Hóspede removido da blacklist")
	}
	http.Redirect(w, r, "/hospedes/"+id, http.StatusSeeOther)
}

func formFromGuest(g Guest) Form {
	return Form{
		FullName:     g.FullName,
		Email:        g.Email,
		Phone:        g.Phone,
		DocumentType: g.DocumentType,
		DocumentID:   g.DocumentID,
		BirthDate:    g.BirthDate,
		Street:       g.Address.Street,
		Number:       g.Address.Number,
		Complement:   g.Address.Complement,
		District:     g.Address.District,
		City:         g.Address.City,
		State:        g.Address.State,
		Zip:          g.Address.Zip,
		Country:      g.Address.Country,
		Notes:        g.Notes,
		Blacklisted:  g.Blacklisted,
	}
}

func requestContext(r *http.Request) context.Context {
	return api.RequestContext(r)
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
