package post

import "errors"

// Erreurs du domaine des articles
var (
	ErrNotFound  = errors.New("article non trouvé")
	ErrForbidden = errors.New("seul l'auteur peut modifier ou supprimer cet article")
)

// Repository interface pour accéder aux articles
type Repository interface {
	Create(post *Post) error
	GetByID(id int) (*Post, error)
	Update(post *Post) error
	Delete(id int) error
	List(limit, offset int) ([]*Post, error)
	ListByAuthor(userID, limit, offset int) ([]*Post, error)
	CountAll() (int, error)
	CountByAuthor(userID int) (int, error)
}
