package post

import (
	"fmt"
	"strings"

	"github.com/cduffaut/microblog/internal/validation"
)

// Pagination des listings
const (
	DefaultPageSize = 5
	MaxPageSize     = 50
)

// Service fournit les opérations sur les articles
type Service struct {
	repo Repository
}

// NewService crée un nouveau service d'articles
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create crée un article pour un utilisateur
func (s *Service) Create(userID int, title, content string) (*Post, error) {
	title = strings.TrimSpace(title)

	if errs := validation.ValidatePost(title, content); len(errs) > 0 {
		return nil, errs
	}

	post := &Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	if err := s.repo.Create(post); err != nil {
		return nil, fmt.Errorf("erreur lors de la création de l'article: %w", err)
	}

	return post, nil
}

// Get récupère un article par son ID
func (s *Service) Get(postID int) (*Post, error) {
	return s.repo.GetByID(postID)
}

// Update modifie un article. Seul son auteur y est autorisé.
func (s *Service) Update(userID, postID int, title, content string) (*Post, error) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if err := ensureOwner(post, userID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if errs := validation.ValidatePost(title, content); len(errs) > 0 {
		return nil, errs
	}

	post.Title = title
	post.Content = content

	if err := s.repo.Update(post); err != nil {
		return nil, fmt.Errorf("erreur lors de la mise à jour de l'article: %w", err)
	}

	return post, nil
}

// Delete supprime un article. Seul son auteur y est autorisé.
func (s *Service) Delete(userID, postID int) error {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		return err
	}

	if err := ensureOwner(post, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(postID); err != nil {
		return fmt.Errorf("erreur lors de la suppression de l'article: %w", err)
	}

	return nil
}

// List récupère une page d'articles, du plus récent au plus ancien
func (s *Service) List(page, pageSize int) (*Page, error) {
	page, pageSize = normalizePagination(page, pageSize)

	total, err := s.repo.CountAll()
	if err != nil {
		return nil, fmt.Errorf("erreur lors du comptage des articles: %w", err)
	}

	posts, err := s.repo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des articles: %w", err)
	}

	return buildPage(posts, page, pageSize, total), nil
}

// ListByAuthor récupère une page d'articles d'un auteur
func (s *Service) ListByAuthor(userID, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePagination(page, pageSize)

	total, err := s.repo.CountByAuthor(userID)
	if err != nil {
		return nil, fmt.Errorf("erreur lors du comptage des articles: %w", err)
	}

	posts, err := s.repo.ListByAuthor(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la récupération des articles: %w", err)
	}

	return buildPage(posts, page, pageSize, total), nil
}

// ensureOwner refuse toute mutation par un autre utilisateur que l'auteur
func ensureOwner(post *Post, userID int) error {
	if post.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// normalizePagination borne la page et la taille de page
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// buildPage assemble une page de résultats
func buildPage(posts []*Post, page, pageSize, total int) *Page {
	totalPages := (total + pageSize - 1) / pageSize

	return &Page{
		Posts:      posts,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
