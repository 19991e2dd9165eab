package authz

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// DenialObserver receives authorization rejections for metrics.
type DenialObserver interface {
	AuthzDenied(kind, resource, action string)
}

// DenialAuditor persists coarse permission denials to the audit trail.
type DenialAuditor interface {
	RecordDenial(ctx context.Context, sess Session, resource Resource, action Action)
}

// Middleware wires the authorization entry point for HTTP handlers. Every
// route group declares its (resource, action) pair as a literal; decisions
// are re-evaluated per request with no caching, so a role downgrade takes
// effect on the next request.
type Middleware struct {
	Logger   *slog.Logger
	Observer DenialObserver
	Auditor  DenialAuditor
}

// Require ensures the current session's role may perform the action on the
// resource. Missing session yields 401, matrix deny yields 403.
func (m Middleware) Require(resource Resource, action Action) func(http.Handler) http.Handler {
	return m.RequireAny(resource, action)
}

// RequireAny ensures the session's role holds at least one of the actions on
// the resource.
func (m Middleware) RequireAny(resource Resource, actions ...Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(actions) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			sess := SessionFromContext(r.Context())
			var denied error
			for _, action := range actions {
				err := Authorize(sess, resource, action)
				if err == nil {
					next.ServeHTTP(w, r)
					return
				}
				denied = err
			}
			if errors.Is(denied, ErrUnauthenticated) {
				m.observe("unauthenticated", resource, actions[0])
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			if m.Logger != nil {
				m.Logger.Warn("permission denied",
					slog.Int64("principal", sess.PrincipalID),
					slog.String("role", string(sess.Role)),
					slog.String("resource", string(Normalize(resource))),
					slog.String("path", r.URL.Path),
				)
			}
			m.observe("permission", resource, actions[0])
			if m.Auditor != nil {
				m.Auditor.RecordDenial(r.Context(), sess, resource, actions[0])
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func (m Middleware) observe(kind string, resource Resource, action Action) {
	if m.Observer == nil {
		return
	}
	m.Observer.AuthzDenied(kind, string(Normalize(resource)), string(action))
}
