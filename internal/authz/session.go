package authz

import "context"

// Session is the authenticated principal context for one request. It is
// materialized by the session provider, read-only inside the authorization
// core, and discarded at request end. Records are owned at group level;
// CompanyID is carried for callers that filter listings by company.
type Session struct {
	PrincipalID int64 `json:"principal_id"`
	Role        Role  `json:"role"`
	GroupID     int64 `json:"group_id"`
	CompanyID   int64 `json:"company_id"`
}

// Authenticated reports whether the session belongs to a signed-in principal.
func (s Session) Authenticated() bool {
	return s.PrincipalID != 0
}

type sessionContextKey struct{}

// ContextWithSession stores the authenticated session in context.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context. A missing session
// yields the zero value, which fails Authenticated.
func SessionFromContext(ctx context.Context) Session {
	sess, _ := ctx.Value(sessionContextKey{}).(Session)
	return sess
}
