package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cduffaut/microblog/internal/security"
	"github.com/cduffaut/microblog/internal/session"
	"github.com/cduffaut/microblog/internal/validation"
)

// AccountHandlers gère les requêtes HTTP pour le compte utilisateur
type AccountHandlers struct {
	service *AccountService
}

// NewAccountHandlers crée des nouveaux gestionnaires pour le compte
func NewAccountHandlers(service *AccountService) *AccountHandlers {
	return &AccountHandlers{service: service}
}

// data pour la m à j du compte
type updateAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GetAccountHandler retourne les informations du compte connecté
func (h *AccountHandlers) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(userSession.UserID)
	if err != nil {
		http.Error(w, "Erreur lors de la récupération du compte", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}

// UpdateAccountHandler gère la mise à jour du nom d'utilisateur et de l'email
func (h *AccountHandlers) UpdateAccountHandler(w http.ResponseWriter, r *http.Request) {
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateAccount(userSession.UserID, req.Username, req.Email); err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Compte mis à jour",
	})
}

// UploadProfilePictureHandler gère l'upload d'une photo de profil
func (h *AccountHandlers) UploadProfilePictureHandler(w http.ResponseWriter, r *http.Request) {
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	// Limiter la taille de la requête avant de parser le multipart
	r.Body = http.MaxBytesReader(w, r.Body, security.MaxFileSize+4096)
	if err := r.ParseMultipartForm(security.MaxFileSize); err != nil {
		http.Error(w, "Fichier trop volumineux ou requête invalide", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		http.Error(w, "Aucun fichier reçu", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Erreur lors de la lecture du fichier", http.StatusInternalServerError)
		return
	}

	filename, err := h.service.UpdateProfilePicture(userSession.UserID, header, fileData)
	if err != nil {
		writeAccountError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message":       "Photo de profil mise à jour",
		"profile_image": fmt.Sprintf("/uploads/%s", filename),
	})
}

// AccountPageHandler affiche la page du compte
func (h *AccountHandlers) AccountPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Mon compte - Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/main.css">
        </head>
        <body>
            <div class="container">
                <h1>Mon compte</h1>
                <img id="profile-picture" alt="Photo de profil">
                <form id="account-form">
                    <label>Nom d'utilisateur <input type="text" name="username"></label>
                    <label>Email <input type="email" name="email"></label>
                    <button type="submit">Mettre à jour</button>
                </form>
                <form id="picture-form" enctype="multipart/form-data">
                    <label>Photo de profil <input type="file" name="picture" accept="image/*"></label>
                    <button type="submit">Envoyer</button>
                </form>
            </div>
            <script src="/static/js/account.js"></script>
        </body>
        </html>
    `)
}

// writeAccountError traduit une erreur de service en réponse HTTP
func writeAccountError(w http.ResponseWriter, err error) {
	var fieldErr validation.ValidationError
	var fileErr security.FileValidationError

	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.As(err, &fieldErr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": validation.ValidationErrors{fieldErr}})
	case errors.As(err, &fileErr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": fileErr.Message})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Utilisateur non trouvé"})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Une erreur s'est produite"})
	}
}
