package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbarak/nexagestion-sub003/internal/authz"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "nexa_session", "test-secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	sm := newTestManager(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.False(t, sess.Identity().Authenticated())

	identity := authz.Session{PrincipalID: 42, Role: authz.RoleManager, GroupID: 7, CompanyID: 19}
	sess.SetIdentity(identity)

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	require.Equal(t, "nexa_session", cookies[0].Name)

	// Replay the cookie and expect the same identity back.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, r2)
	require.NoError(t, err)
	assert.Equal(t, identity, loaded.Identity())
}

func TestSessionDestroy(t *testing.T) {
	ctx := context.Background()
	sm := newTestManager(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)
	sess.SetIdentity(authz.Session{PrincipalID: 1, Role: authz.RoleAdmin, GroupID: 2})

	rec := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec, sess))
	cookie := rec.Result().Cookies()[0]

	sm.Destroy(sess)
	rec2 := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rec2, sess))

	expired := rec2.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.Equal(t, -1, expired[0].MaxAge)

	// The stored payload is gone: loading the old cookie yields an anonymous
	// session again.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(cookie)
	loaded, err := sm.Load(ctx, r2)
	require.NoError(t, err)
	assert.False(t, loaded.Identity().Authenticated())
}

func TestSessionUnknownCookieGetsFreshState(t *testing.T) {
	ctx := context.Background()
	sm := newTestManager(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "nexa_session", Value: "stale-id"})

	sess, err := sm.Load(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "stale-id", sess.ID)
	assert.False(t, sess.Identity().Authenticated())
}
