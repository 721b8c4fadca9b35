package dashboard

import (
	"log/slog"
	"net/http"

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

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Show)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.Property() == "" {
		shared.Flash(r.Context(), shared.FlashError, "Selecione uma pousada")
		http.Redirect(w, r, "/configuracoes", http.StatusSeeOther)
		return
	}
	summary, err := h.service.Load(api.RequestContext(r), sess.Property())
	if err != nil {
		h.logger.Error("load dashboard failed", slog.Any("error", err))
		if failErr := h.templates.Fail(w, r, h.csrf, "Não foi possível carregar o painel"); failErr != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	err = h.templates.Page(w, r, h.csrf, "pages/dashboard.html", "Painel", map[string]any{
		"Summary":    summary,
		"DeltaBadge": deltaBadge(summary.RevenueDelta),
	})
	if err != nil {
		h.logger.Error("render dashboard", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func deltaBadge(delta float64) ui.Badge {
	switch {
	case delta > 0:
		return ui.Badge{Label: "em alta", Variant: ui.VariantSuccess}
	case delta < 0:
		return ui.Badge{Label: "em queda", Variant: ui.VariantDanger}
	default:
		return ui.Badge{Label: "estável", Variant: ui.VariantNeutral}
	}
}
