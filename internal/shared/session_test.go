package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionPersistsValuesAcrossRequests(t *testing.T) {
	_, client := newTestRedis(t)
	sm := NewSessionManager(client, "costintel_session", "session-secret", time.Hour, false)
	ctx := context.Background()

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, first)
	require.NoError(t, err)
	sess.Set("simulations.draft", `{"startDate":"2024-01-01"}`)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, strings.HasPrefix(cookies[0].Value, sess.ID+"."))
	assert.True(t, cookies[0].HttpOnly)

	second := httptest.NewRequest(http.MethodGet, "/", nil)
	second.AddCookie(cookies[0])
	again, err := sm.Load(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, again.ID)
	assert.Equal(t, `{"startDate":"2024-01-01"}`, again.Get("simulations.draft"))
}

func TestFlashSurvivesRedirect(t *testing.T) {
	_, client := newTestRedis(t)
	sm := NewSessionManager(client, "costintel_session", "session-secret", time.Hour, false)
	ctx := context.Background()

	post := httptest.NewRequest(http.MethodPost, "/simulacoes/run", nil)
	sess, err := sm.Load(ctx, post)
	require.NoError(t, err)
	sess.AddFlash(FlashMessage{Kind: FlashSuccess, Message: "Cenário salvo."})
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookie := rr.Result().Cookies()[0]

	get := httptest.NewRequest(http.MethodGet, "/simulacoes", nil)
	get.AddCookie(cookie)
	next, err := sm.Load(ctx, get)
	require.NoError(t, err)
	flash := next.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Cenário salvo.", flash.Message)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), next))

	reload := httptest.NewRequest(http.MethodGet, "/simulacoes", nil)
	reload.AddCookie(cookie)
	last, err := sm.Load(ctx, reload)
	require.NoError(t, err)
	assert.Nil(t, last.PopFlash())
}

func TestSessionIgnoresForgedCookie(t *testing.T) {
	_, client := newTestRedis(t)
	sm := NewSessionManager(client, "costintel_session", "session-secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "costintel_session", Value: "../../etc"})
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "../../etc", sess.ID)
}

func TestSessionRejectsUnsignedID(t *testing.T) {
	_, client := newTestRedis(t)
	sm := NewSessionManager(client, "costintel_session", "session-secret", time.Hour, false)
	other := NewSessionManager(client, "costintel_session", "other-secret", time.Hour, false)
	ctx := context.Background()

	sess, err := other.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	require.NoError(t, other.Commit(ctx, rr, sess))

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	bare.AddCookie(&http.Cookie{Name: "costintel_session", Value: sess.ID})
	got, err := sm.Load(ctx, bare)
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, got.ID)

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(rr.Result().Cookies()[0])
	got, err = sm.Load(ctx, forged)
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, got.ID)
}

func TestDestroyExpiresCookie(t *testing.T) {
	mr, client := newTestRedis(t)
	sm := NewSessionManager(client, "costintel_session", "session-secret", time.Hour, false)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))
	require.True(t, mr.Exists("session:"+sess.ID))

	sm.Destroy(sess)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	assert.False(t, mr.Exists("session:"+sess.ID))
	assert.Equal(t, -1, rr.Result().Cookies()[0].MaxAge)
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	sess := &Session{ID: "abc"}

	token, err := m.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	again, err := m.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, m.VerifyToken(context.Background(), sess, token))
	assert.ErrorIs(t, m.VerifyToken(context.Background(), sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(context.Background(), sess, "forged"), ErrCSRFTokenMismatch)

	other := &Session{ID: "xyz"}
	other.Set(CSRFSessionKey, token)
	assert.ErrorIs(t, m.VerifyToken(context.Background(), other, token), ErrCSRFTokenMismatch)
	reissued, err := m.EnsureToken(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, token, reissued)
}
