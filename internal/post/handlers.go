package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cduffaut/microblog/internal/session"
	"github.com/cduffaut/microblog/internal/user"
	"github.com/cduffaut/microblog/internal/validation"
	"goji.io/pat"
)

// Handlers gère les requêtes HTTP pour les articles
type Handlers struct {
	service        *Service
	accountService *user.AccountService
}

// NewHandlers crée des nouveaux gestionnaires pour les articles
func NewHandlers(service *Service, accountService *user.AccountService) *Handlers {
	return &Handlers{
		service:        service,
		accountService: accountService,
	}
}

// data pour la création et la modification d'un article
type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePostHandler gère la création d'un article
func (h *Handlers) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	// L'identité vient du contexte, posée par le middleware d'auth
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	newPost, err := h.service.Create(userSession.UserID, req.Title, req.Content)
	if err != nil {
		writePostError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newPost)
}

// GetPostHandler gère la lecture d'un article
func (h *Handlers) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(pat.Param(r, "postID"))
	if err != nil {
		http.Error(w, "ID d'article invalide", http.StatusBadRequest)
		return
	}

	p, err := h.service.Get(postID)
	if err != nil {
		writePostError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// UpdatePostHandler gère la modification d'un article
func (h *Handlers) UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(pat.Param(r, "postID"))
	if err != nil {
		http.Error(w, "ID d'article invalide", http.StatusBadRequest)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Format de requête invalide", http.StatusBadRequest)
		return
	}

	updatedPost, err := h.service.Update(userSession.UserID, postID, req.Title, req.Content)
	if err != nil {
		writePostError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedPost)
}

// DeletePostHandler gère la suppression d'un article
func (h *Handlers) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	userSession, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Non authentifié", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.Atoi(pat.Param(r, "postID"))
	if err != nil {
		http.Error(w, "ID d'article invalide", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(userSession.UserID, postID); err != nil {
		writePostError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Article supprimé",
	})
}

// ListPostsHandler gère le listing paginé de tous les articles
func (h *Handlers) ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	page, pageSize := paginationParams(r)

	result, err := h.service.List(page, pageSize)
	if err != nil {
		http.Error(w, "Erreur lors de la récupération des articles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ListUserPostsHandler gère le listing paginé des articles d'un auteur
func (h *Handlers) ListUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	username := pat.Param(r, "username")

	author, err := h.accountService.GetByUsername(username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "Utilisateur non trouvé", http.StatusNotFound)
			return
		}
		http.Error(w, "Erreur lors de la récupération de l'utilisateur", http.StatusInternalServerError)
		return
	}

	page, pageSize := paginationParams(r)

	result, err := h.service.ListByAuthor(author.ID, page, pageSize)
	if err != nil {
		http.Error(w, "Erreur lors de la récupération des articles", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"author": author.Username,
		"page":   result,
	})
}

// HomePageHandler affiche la page d'accueil avec le fil des articles
func (h *Handlers) HomePageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	fmt.Fprint(w, `
        <!DOCTYPE html>
        <html>
        <head>
            <title>Microblog</title>
            <meta name="viewport" content="width=device-width, initial-scale=1">
            <link rel="stylesheet" href="/static/css/main.css">
        </head>
        <body>
            <header>
                <h1>Microblog</h1>
                <nav>
                    <a href="/register">S'inscrire</a>
                    <a href="/login">Se connecter</a>
                    <a href="/account">Mon compte</a>
                    <a href="/logout">Se déconnecter</a>
                </nav>
            </header>
            <div class="container">
                <div id="posts"></div>
                <div id="pagination"></div>
            </div>
            <script src="/static/js/home.js"></script>
        </body>
        </html>
    `)
}

// paginationParams lit les paramètres de pagination de la requête
func paginationParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return page, pageSize
}

// writePostError traduit une erreur de service en réponse HTTP
func writePostError(w http.ResponseWriter, err error) {
	var fieldErr validation.ValidationError
	var fieldErrs validation.ValidationErrors

	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrForbidden):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
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
