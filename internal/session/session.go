// internal/session/session.go
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cduffaut/microblog/internal/models"
)

// Durées de vie des sessions
const (
	DefaultLifetime  = 24 * time.Hour      // session classique
	RememberLifetime = 30 * 24 * time.Hour // session "se souvenir de moi"
)

// Session représente une session utilisateur
type Session struct {
	UserID    int
	Username  string
	ExpiresAt time.Time
}

// Manager gère les sessions utilisateur
type Manager struct {
	CookieName string

	mu       sync.RWMutex
	sessions map[string]Session
}

// NewManager crée un nouveau gestionnaire de session
func NewManager(cookieName string) *Manager {
	return &Manager{
		CookieName: cookieName,
		sessions:   make(map[string]Session),
	}
}

// CreateSession crée une nouvelle session pour un utilisateur.
// Avec remember, la session dure 30 jours et le cookie survit au navigateur;
// sinon 24h côté serveur et un cookie de session côté client.
func (m *Manager) CreateSession(w http.ResponseWriter, user *models.User, remember bool) (string, error) {
	// Générer un token de session
	sessionToken, err := generateRandomToken(32)
	if err != nil {
		return "", fmt.Errorf("erreur lors de la génération du token de session: %w", err)
	}

	lifetime := DefaultLifetime
	if remember {
		lifetime = RememberLifetime
	}

	// Créer la session
	session := Session{
		UserID:    user.ID,
		Username:  user.Username,
		ExpiresAt: time.Now().Add(lifetime),
	}

	// Stocker la session
	m.mu.Lock()
	m.sessions[sessionToken] = session
	m.mu.Unlock()

	// Créer le cookie
	cookie := http.Cookie{
		Name:     m.CookieName,
		Value:    sessionToken,
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
		Secure:   false, // À mettre à true en production
	}

	// Sans remember, pas d'Expires: le cookie disparaît à la fermeture du navigateur
	if remember {
		cookie.Expires = session.ExpiresAt
	}

	// Définir le cookie dans la réponse
	http.SetCookie(w, &cookie)

	return sessionToken, nil
}

// GetSession récupère une session à partir d'une requête
func (m *Manager) GetSession(r *http.Request) (*Session, error) {
	// Récupérer le cookie de session
	cookie, err := r.Cookie(m.CookieName)
	if err != nil {
		return nil, fmt.Errorf("pas de session trouvée")
	}

	// Récupérer la session
	m.mu.RLock()
	session, exists := m.sessions[cookie.Value]
	m.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("session invalide")
	}

	// Vérifier si la session a expiré
	if time.Now().After(session.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, cookie.Value)
		m.mu.Unlock()
		return nil, fmt.Errorf("session expirée")
	}

	return &session, nil
}

// DestroySession détruit une session
func (m *Manager) DestroySession(w http.ResponseWriter, r *http.Request) error {
	// Récupérer le cookie de session
	cookie, err := r.Cookie(m.CookieName)
	if err != nil {
		return nil // Pas de session à détruire
	}

	// Supprimer la session
	m.mu.Lock()
	delete(m.sessions, cookie.Value)
	m.mu.Unlock()

	// Expirer le cookie
	expiredCookie := http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
		Secure:   false,
	}

	http.SetCookie(w, &expiredCookie)

	return nil
}

// Clé pour stocker la session dans le contexte
type sessionKeyType struct{}

var sessionKey = sessionKeyType{}

// WithSession ajoute une session au contexte
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// FromContext récupère la session du contexte
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionKey).(*Session)
	return session, ok
}

// generateRandomToken génère un token aléatoire de la taille spécifiée
func generateRandomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
