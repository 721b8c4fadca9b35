package settings

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/forms"
	"github.com/maresia/maresia/internal/guests"
	"github.com/maresia/maresia/internal/inventory"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/platform/api"
	"github.com/maresia/maresia/internal/reservations"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/view"
)

// propertyScopes is every cache scope keyed by the active pousada; all of
// them are bumped when the user switches property.
var propertyScopes = []string{
	guests.Scope,
	lodging.ScopeAccommodations,
	lodging.ScopeRoomTypes,
	lodging.ScopeAmenities,
	reservations.Scope,
	inventory.ScopeProducts,
	inventory.ScopeCategories,
	inventory.ScopeMovements,
	finance.ScopeSuppliers,
	finance.ScopeAccounts,
	finance.ScopeLedger,
	finance.ScopeCategories,
	finance.ScopePayables,
	finance.ScopeReceivables,
}

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Post("/pousada", h.SwitchProperty)
	r.Post("/pousada/configs", h.UpdateConfigs)
	r.Post("/senha", h.UpdatePassword)
	r.Post("/tema", h.SetTheme)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := api.RequestContext(r)
	sess := shared.SessionFromContext(r.Context())

	properties, err := h.service.ListProperties(ctx)
	if err != nil {
		h.logger.Error("list properties failed", slog.Any("error", err))
		if failErr := h.templates.Fail(w, r, h.csrf, "Não foi possível carregar as pousadas"); failErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	profile, err := h.service.Me(ctx)
	if err != nil {
		h.logger.Warn("load profile failed", slog.Any("error", err))
	}

	data := map[string]any{
		"Properties": properties,
		"Profile":    profile,
		"ActiveID":   "",
		"Theme":      "light",
		"Configs":    Configs{},
	}
	if sess != nil {
		data["ActiveID"] = sess.Property()
		if theme := sess.Get("theme"); theme != "" {
			data["Theme"] = theme
		}
		if sess.Property() != "" {
			configs, err := h.service.GetConfigs(ctx, sess.Property())
			if err != nil {
				h.logger.Warn("load configs failed", slog.Any("error", err))
			} else {
				data["Configs"] = configs
			}
		}
	}

	if err := h.templates.Page(w, r, h.csrf, "pages/settings.html", "Configurações", data); err != nil {
		h.logger.Error("render settings", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// SwitchProperty makes another pousada active for this session and drops
// every cached listing scoped to the previous one.
func (h *Handler) SwitchProperty(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	propertyID := strings.TrimSpace(r.PostFormValue("property_id"))
	if propertyID == "" {
		shared.Flash(r.Context(), shared.FlashError, "Selecione uma pousada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	properties, err := h.service.ListProperties(api.RequestContext(r))
	if err != nil {
		shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, "Não foi possível trocar de pousada"))
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	var selected *Property
	for i := range properties {
		if properties[i].ID == propertyID {
			selected = &properties[i]
			break
		}
	}
	if selected == nil {
		shared.Flash(r.Context(), shared.FlashError, "Pousada não encontrada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	sess.SetProperty(selected.ID)
	sess.Set("property_name", selected.Name)
	if err := h.service.SwitchProperty(api.RequestContext(r), propertyScopes...); err != nil {
		h.logger.Warn("bump property scopes", slog.Any("error", err))
	}
	shared.Flash(r.Context(), shared.FlashSuccess, "Pousada ativa: "+selected.Name)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

type configsForm struct {
	CheckInHour    string `validate:"required"`
	CheckOutHour   string `validate:"required"`
	Currency       string `validate:"required,len=3"`
	DailyRateRound bool
	CityTaxPercent string
}

func (h *Handler) UpdateConfigs(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.Property() == "" {
		shared.Flash(r.Context(), shared.FlashError, "Selecione uma pousada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := configsForm{
		CheckInHour:    strings.TrimSpace(r.PostFormValue("check_in_hour")),
		CheckOutHour:   strings.TrimSpace(r.PostFormValue("check_out_hour")),
		Currency:       strings.ToUpper(strings.TrimSpace(r.PostFormValue("currency"))),
		DailyRateRound: r.PostFormValue("daily_rate_round") == "on",
		CityTaxPercent: strings.TrimSpace(r.PostFormValue("city_tax_percent")),
	}
	errs := forms.Check(form)
	tax, ok := forms.Amount(form.CityTaxPercent)
	if !ok {
		errs["CityTaxPercent"] = "percentual inválido"
	}
	if len(errs) > 0 {
		shared.Flash(r.Context(), shared.FlashError, firstError(errs))
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	configs := Configs{
		CheckInHour:    form.CheckInHour,
		CheckOutHour:   form.CheckOutHour,
		Currency:       form.Currency,
		DailyRateRound: form.DailyRateRound,
	}
	if tax != nil {
		configs.CityTaxPercent = *tax
	}
	if err := h.service.UpdateConfigs(api.RequestContext(r), sess.Property(), configs); err != nil {
		shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, "Falha ao salvar configurações"))
	} else {
		shared.Flash(r.Context(), shared.FlashSuccess, "Configurações salvas")
	}
	http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	current := r.PostFormValue("current_password")
	next := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")
	switch {
	case current == "" || next == "":
		shared.Flash(r.Context(), shared.FlashError, "Preencha a senha atual e a nova senha")
	case len(next) < 8:
		shared.Flash(r.Context(), shared.FlashError, "A nova senha deve ter ao menos 8 caracteres")
	case next != confirm:
		shared.Flash(r.Context(), shared.FlashError, "A confirmação não confere")
	default:
		err := h.service.UpdatePassword(api.RequestContext(r), PasswordInput{Current: current, New: next})
		if err != nil {
			shared.Flash(r.Context(), shared.FlashError, api.UserMessage(err, "Falha ao alterar a senha"))
		} else {
			shared.Flash(r.Context(), shared.FlashSuccess, "Senha alterada")
		}
	}
	http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
}

// SetTheme stores the theme preference in the session. It is a best-effort
// display setting, never the system of record.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	theme := r.PostFormValue("theme")
	if sess != nil && (theme == "light" || theme == "dark") {
		sess.Set("theme", theme)
	}
	http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
}

func firstError(errs map[string]string) string {
	for _, msg := range errs {
		return msg
	}
	return "dados inválidos"
}
