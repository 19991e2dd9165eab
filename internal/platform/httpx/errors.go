package httpx

import (
	"errors"
	"net/http"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

// ErrValidation marks request bodies that failed schema validation.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to HTTP responses using RFC7807.
//
// authz.ErrScopeDenied deliberately produces the same 404 body as
// shared.ErrNotFound: a principal outside the owning tenant must not be able
// to distinguish "exists elsewhere" from "does not exist". The two stay
// distinct internally for logs, metrics and audit.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
	case errors.Is(err, authz.ErrPermissionDenied):
		Problem(w, http.StatusForbidden, "Forbidden", "permission denied")
	case errors.Is(err, authz.ErrScopeDenied), errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
