package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maresia/maresia/internal/auth"
	"github.com/maresia/maresia/internal/dashboard"
	"github.com/maresia/maresia/internal/finance"
	"github.com/maresia/maresia/internal/guests"
	"github.com/maresia/maresia/internal/inventory"
	"github.com/maresia/maresia/internal/lodging"
	"github.com/maresia/maresia/internal/reservations"
	"github.com/maresia/maresia/internal/settings"
	"github.com/maresia/maresia/internal/shared"
	"github.com/maresia/maresia/internal/view"
	"github.com/maresia/maresia/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Templates           *view.Engine
	SessionManager      *shared.SessionManager
	CSRFManager         *shared.CSRFManager
	AuthHandler         *auth.Handler
	DashboardHandler    *dashboard.Handler
	GuestsHandler       *guests.Handler
	LodgingHandler      *lodging.Handler
	ReservationsHandler *reservations.Handler
	InventoryHandler    *inventory.Handler
	FinanceHandler      *finance.Handler
	SettingsHandler     *settings.Handler
}

// NewRouter constructs the chi.Router with Maresia defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
	}) {
		r.Use(mw)
	}

	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	// Everything below needs an authenticated session with a selected
	// property; requireAuth redirects to the login page otherwise.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth(params.Logger))
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		r.Route("/hospedes", params.GuestsHandler.MountRoutes)
		r.Route("/acomodacoes", params.LodgingHandler.MountRoutes)
		r.Route("/reservas", params.ReservationsHandler.MountRoutes)
		r.Route("/estoque", params.InventoryHandler.MountRoutes)
		r.Route("/financeiro", params.FinanceHandler.MountRoutes)
		r.Route("/configuracoes", params.SettingsHandler.MountRoutes)
	})

	return r
}

func requireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			if sess == nil || sess.User() == "" || sess.Token() == "" {
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
