package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arbarak/nexagestion-sub003/internal/auth"
	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/clients"
	"github.com/arbarak/nexagestion-sub003/internal/invoices"
	"github.com/arbarak/nexagestion-sub003/internal/observability"
	"github.com/arbarak/nexagestion-sub003/internal/platform/httpx"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
	"github.com/arbarak/nexagestion-sub003/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Config         *Config
	SessionManager *shared.SessionManager
	AuthHandler    *auth.Handler
	ClientsHandler *clients.Handler
	InvoiceHandler *invoices.Handler
	UsersHandler   *users.Handler
	Metrics        *observability.Metrics
	Middleware     MiddlewareConfig
}

// NewRouter constructs the chi.Router with NexaGestion defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(params.Middleware) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	if params.AuthHandler != nil {
		params.AuthHandler.MountRoutes(r)
	}

	r.Route("/api", func(api chi.Router) {
		// Effective permissions of the caller, per canonical resource.
		api.Get("/permissions", func(w http.ResponseWriter, req *http.Request) {
			sess := authz.SessionFromContext(req.Context())
			if !sess.Authenticated() {
				httpx.RespondError(w, authz.ErrUnauthenticated)
				return
			}
			grants := make(map[authz.Resource][]authz.Action)
			for _, res := range authz.CanonicalResources() {
				if actions := authz.ActionsFor(sess.Role, res); len(actions) > 0 {
					grants[res] = actions
				}
			}
			httpx.JSON(w, http.StatusOK, map[string]any{
				"role":   sess.Role,
				"grants": grants,
			})
		})

		if params.ClientsHandler != nil {
			params.ClientsHandler.MountRoutes(api)
		}
		if params.InvoiceHandler != nil {
			params.InvoiceHandler.MountRoutes(api)
		}
		if params.UsersHandler != nil {
			params.UsersHandler.MountRoutes(api)
		}
	})

	return r
}
