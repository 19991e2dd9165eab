package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
	"github.com/arbarak/nexagestion-sub003/internal/shared"
)

type mockRepo struct {
	users    map[string]*User
	sessions map[string]int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[string]*User), sessions: make(map[string]int64)}
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	m.sessions[id] = userID
	return nil
}

func (m *mockRepo) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, *mockRepo, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sm := shared.NewSessionManager(client, "nexa_session", "secret", time.Hour, false)

	repo := newMockRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.users["manager@acme.test"] = &User{
		ID:           7,
		Email:        "manager@acme.test",
		Name:         "Test Manager",
		PasswordHash: string(hash),
		Role:         "manager",
		GroupID:      3,
		CompanyID:    12,
		IsActive:     true,
	}

	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(repo), sm)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			sess, err := sm.Load(req.Context(), req)
			require.NoError(t, err)
			ctx := shared.ContextWithSession(req.Context(), sess)
			// Commit before the handler's first write so cookie headers make
			// it out, mirroring the app middleware.
			next.ServeHTTP(&commitWriter{ResponseWriter: w, ctx: ctx, sm: sm, sess: sess}, req.WithContext(ctx))
		})
	})
	handler.MountRoutes(r)
	return r, repo, sm
}

type commitWriter struct {
	http.ResponseWriter
	ctx       context.Context
	sm        *shared.SessionManager
	sess      *shared.Session
	committed bool
}

func (w *commitWriter) WriteHeader(code int) {
	if !w.committed {
		w.committed = true
		_ = w.sm.Commit(w.ctx, w.ResponseWriter, w.sess)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *commitWriter) Write(b []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func TestLoginSuccess(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	body := strings.NewReader(`{"email":"manager@acme.test","password":"correct-horse"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "nexa_session", cookies[0].Name)
	assert.Len(t, repo.sessions, 1)
	assert.Contains(t, rec.Body.String(), `"role":"manager"`)
}

func TestLoginInvalidCredentials(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	cases := []string{
		`{"email":"manager@acme.test","password":"wrong-password"}`,
		`{"email":"nobody@acme.test","password":"correct-horse"}`,
	}
	for _, payload := range cases {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.Empty(t, repo.sessions)
}

func TestLoginValidation(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	router, repo, _ := newTestRouter(t)

	login := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"manager@acme.test","password":"correct-horse"}`))
	loginRec := httptest.NewRecorder()
	router.ServeHTTP(loginRec, login)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookie := loginRec.Result().Cookies()[0]

	logout := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logout.AddCookie(cookie)
	logoutRec := httptest.NewRecorder()
	router.ServeHTTP(logoutRec, logout)

	assert.Equal(t, http.StatusNoContent, logoutRec.Code)
	assert.Empty(t, repo.sessions)
}

// Identity assembly is the seam between authentication and authorization;
// pin the mapping.
func TestServiceIdentity(t *testing.T) {
	svc := NewService(newMockRepo())
	identity := svc.Identity(&User{ID: 9, Role: "Manager", GroupID: 4, CompanyID: 2})
	assert.Equal(t, authz.Session{PrincipalID: 9, Role: authz.RoleManager, GroupID: 4, CompanyID: 2}, identity)
	assert.True(t, identity.Authenticated())
	assert.False(t, svc.Identity(nil).Authenticated())
}
