package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cduffaut/microblog/internal/session"
	"github.com/cduffaut/microblog/internal/validation"
)

// Handlers gère les requêtes HTTP pour l'authentification
type Handlers struct {
	service        *Service
	sessionManager *session.Manager
}

// NewHandlers crée des nouveaux gestionnaires pour l'authentification
func NewHandlers(service *Service, sessionManager *session.Manager) *Handlers {
	return &Handlers{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterHandler gère l'inscription
func (h *Handlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	// Vérifier que la méthode est POST
	if r.Method != http.MethodPost {
		http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
		return
	}

	// Décoder le corps de la requête
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	// Enregistrer l'utilisateur
	newUser, err := h.service.Register(req)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	// Répondre avec succès
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Inscription réussie, vous pouvez maintenant vous connecter",
		"user_id": newUser.ID,
	})
}

// LoginHandler gère la connexion
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	// Vérifier que la méthode est POST
	if r.Method != http.MethodPost {
		http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
		return
	}

	// Décoder le corps de la requête
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	// Connecter l'utilisateur
	u, err := h.service.Login(req)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"message": err.Error(),
		})
		return
	}

	// Créer une session
	if _, err := h.sessionManager.CreateSession(w, u, req.Remember); err != nil {
		http.Error(w, "Erreur lors de la création de la session", http.StatusInternalServerError)
		return
	}

	// Répondre avec succès
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Connexion réussie",
		"user": map[string]interface{}{
			"id":       u.ID,
			"username": u.Username,
			"email":    u.Email,
		},
	})
}

// LogoutHandler gère la déconnexion
func (h *Handlers) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	// Détruire la session
	if err := h.sessionManager.DestroySession(w, r); err != nil {
		http.Error(w, "Erreur lors de la déconnexion", http.StatusInternalServerError)
		return
	}

	// Rediriger vers la page d'accueil
	http.Redirect(w, r, "/", http.StatusFound)
}

// ForgotPasswordHandler gère la demande de réinitialisation de mot de passe
func (h *Handlers) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	// Vérifier que la méthode est POST
	if r.Method != http.MethodPost {
		http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
		return
	}

	// Décoder le corps de la requête
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	// Valider les données
	if req.Email == "" {
		http.Error(w, "L'adresse email est obligatoire", http.StatusBadRequest)
		return
	}

	// Envoyer l'email de réinitialisation
	if err := h.service.ForgotPassword(req); err != nil {
		// Ne pas révéler si l'email existe ou non
		http.Error(w, "Une erreur s'est produite", http.StatusInternalServerError)
		return
	}

	// Répondre avec succès
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Si l'adresse email existe, un lien de réinitialisation a été envoyé",
	})
}

// ResetPasswordHandler gère la réinitialisation de mot de passe
func (h *Handlers) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	// Vérifier que la méthode est POST
	if r.Method != http.MethodPost {
		http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
		return
	}

	// Décoder le corps de la requête
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	// Valider les données
	if req.Token == "" || req.Password == "" {
		http.Error(w, "Tous les champs sont obligatoires", http.StatusBadRequest)
		return
	}

	// Réinitialiser le mot de passe
	if err := h.service.ResetPassword(req); err != nil {
		// Token invalide ou expiré: renvoyer vers la demande de réinitialisation
		if errors.Is(err, ErrInvalidToken) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{
				"message":  err.Error(),
				"redirect": "/forgot-password",
			})
			return
		}
		writeAuthError(w, err)
		return
	}

	// Répondre avec succès
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Mot de passe réinitialisé avec succès",
	})
}

// writeAuthError traduit une erreur de service en réponse HTTP
func writeAuthError(w http.ResponseWriter, err error) {
	var fieldErr validation.ValidationError
	var fieldErrs validation.ValidationErrors

	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.As(err, &fieldErrs):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": fieldErrs})
	case errors.As(err, &fieldErr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": validation.ValidationErrors{fieldErr}})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Une erreur s'est produite"})
	}
}

// RegisterPageHandler affiche la page d'inscription
func (h *Handlers) RegisterPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Inscription - Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/auth.css">
        </head>
        <body>
            <div class="container">
                <h1>Inscription</h1>
                <form id="register-form">
                    <label>Nom d'utilisateur <input type="text" name="username" required></label>
                    <label>Email <input type="email" name="email" required></label>
                    <label>Mot de passe <input type="password" name="password" required></label>
                    <button type="submit">S'inscrire</button>
                </form>
                <p>Déjà un compte ? <a href="/login">Se connecter</a></p>
            </div>
            <script src="/static/js/register.js"></script>
        </body>
        </html>
    `)
}

// LoginPageHandler affiche la page de connexion
func (h *Handlers) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Connexion - Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/auth.css">
        </head>
        <body>
            <div class="container">
                <h1>Connexion</h1>
                <form id="login-form">
                    <label>Nom d'utilisateur <input type="text" name="username" required></label>
                    <label>Mot de passe <input type="password" name="password" required></label>
                    <label><input type="checkbox" name="remember"> Se souvenir de moi</label>
                    <button type="submit">Se connecter</button>
                </form>
                <p><a href="/forgot-password">Mot de passe oublié ?</a></p>
                <p>Pas encore de compte ? <a href="/register">S'inscrire</a></p>
            </div>
            <script src="/static/js/login.js"></script>
        </body>
        </html>
    `)
}

// ForgotPasswordPageHandler affiche la page de demande de réinitialisation
func (h *Handlers) ForgotPasswordPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Mot de passe oublié - Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/auth.css">
        </head>
        <body>
            <div class="container">
                <h1>Mot de passe oublié</h1>
                <form id="forgot-password-form">
                    <label>Email <input type="email" name="email" required></label>
                    <button type="submit">Envoyer le lien de réinitialisation</button>
                </form>
                <p><a href="/login">Retour à la connexion</a></p>
            </div>
            <script src="/static/js/forgot-password.js"></script>
        </body>
        </html>
    `)
}

// ResetPasswordPageHandler affiche la page de réinitialisation de mot de passe
func (h *Handlers) ResetPasswordPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Réinitialisation - Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/auth.css">
        </head>
        <body>
            <div class="container">
                <h1>Nouveau mot de passe</h1>
                <form id="reset-password-form">
                    <label>Nouveau mot de passe <input type="password" name="password" required></label>
                    <button type="submit">Réinitialiser</button>
                </form>
            </div>
            <script src="/static/js/reset-password.js"></script>
        </body>
        </html>
    `)
}
