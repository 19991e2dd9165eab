package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{authz.ErrUnauthenticated, http.StatusUnauthorized},
		{authz.ErrPermissionDenied, http.StatusForbidden},
		{authz.ErrScopeDenied, http.StatusNotFound},
		{shared.ErrNotFound, http.StatusNotFound},
		{shared.ErrDuplicate, http.StatusConflict},
		{fmt.Errorf("%w: code is required", ErrValidation), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
	}
}

func TestScopeDeniedIsOpaque(t *testing.T) {
	// The body for a cross-tenant record and a missing record must be
	// byte-identical so existence never leaks.
	scope := httptest.NewRecorder()
	RespondError(scope, authz.ErrScopeDenied)

	missing := httptest.NewRecorder()
	RespondError(missing, shared.ErrNotFound)

	require.Equal(t, missing.Code, scope.Code)
	assert.Equal(t, missing.Body.String(), scope.Body.String())
}
