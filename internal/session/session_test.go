package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: 7, Username: "alice"}
}

// requestWith construit une requête portant le cookie de session
func requestWith(t *testing.T, m *Manager, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.Name == m.CookieName {
			r.AddCookie(c)
			return r
		}
	}
	t.Fatal("cookie de session absent de la réponse")
	return nil
}

func TestManager_LoginLogout(t *testing.T) {
	m := NewManager("test_session")
	w := httptest.NewRecorder()

	// anonyme -> authentifie
	_, err := m.CreateSession(w, testUser(), false)
	require.NoError(t, err)

	r := requestWith(t, m, w)
	s, err := m.GetSession(r)
	require.NoError(t, err)
	require.Equal(t, 7, s.UserID)
	require.Equal(t, "alice", s.Username)

	// authentifie -> anonyme
	w2 := httptest.NewRecorder()
	require.NoError(t, m.DestroySession(w2, r))

	_, err = m.GetSession(r)
	require.Error(t, err)
}

func TestManager_NoSession(t *testing.T) {
	m := NewManager("test_session")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := m.GetSession(r)
	require.Error(t, err)

	// cookie present mais token inconnu
	r.AddCookie(&http.Cookie{Name: "test_session", Value: "inconnu"})
	_, err = m.GetSession(r)
	require.Error(t, err)
}

func TestManager_RememberLifetime(t *testing.T) {
	m := NewManager("test_session")

	// session classique: cookie de session, expiration 24h cote serveur
	w := httptest.NewRecorder()
	token, err := m.CreateSession(w, testUser(), false)
	require.NoError(t, err)

	cookie := w.Result().Cookies()[0]
	require.True(t, cookie.Expires.IsZero(), "le cookie sans remember ne doit pas avoir d'Expires")
	require.WithinDuration(t, time.Now().Add(DefaultLifetime), m.sessions[token].ExpiresAt, time.Minute)

	// session remember: cookie persistant, expiration 30 jours
	w2 := httptest.NewRecorder()
	token2, err := m.CreateSession(w2, testUser(), true)
	require.NoError(t, err)

	cookie2 := w2.Result().Cookies()[0]
	require.False(t, cookie2.Expires.IsZero(), "le cookie remember doit avoir un Expires")
	require.WithinDuration(t, time.Now().Add(RememberLifetime), m.sessions[token2].ExpiresAt, time.Minute)
}

func TestManager_ExpiredSession(t *testing.T) {
	m := NewManager("test_session")
	w := httptest.NewRecorder()

	token, err := m.CreateSession(w, testUser(), false)
	require.NoError(t, err)

	// forcer l'expiration
	s := m.sessions[token]
	s.ExpiresAt = time.Now().Add(-time.Minute)
	m.sessions[token] = s

	r := requestWith(t, m, w)
	_, err = m.GetSession(r)
	require.Error(t, err)

	// la session expiree a ete purgee
	_, exists := m.sessions[token]
	require.False(t, exists)
}

func TestManager_UniqueTokens(t *testing.T) {
	m := NewManager("test_session")

	token1, err := m.CreateSession(httptest.NewRecorder(), testUser(), false)
	require.NoError(t, err)
	token2, err := m.CreateSession(httptest.NewRecorder(), testUser(), false)
	require.NoError(t, err)

	require.NotEqual(t, token1, token2)
}

func TestContext_RoundTrip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	// contexte vide: pas de session
	_, ok := FromContext(r.Context())
	require.False(t, ok)

	s := &Session{UserID: 7, Username: "alice"}
	ctx := WithSession(r.Context(), s)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, s, got)
}
