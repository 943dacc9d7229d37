package user

import (
	"errors"

	"github.com/cduffaut/microblog/internal/models"
)

// ErrNotFound est retourné quand aucun utilisateur ne correspond à la recherche
var ErrNotFound = errors.New("utilisateur non trouvé")

// Repository interface pour accéder aux données utilisateur
type Repository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(id int, password string) error
	UpdateAccountInfo(id int, username, email string) error
	UpdateProfileImage(id int, filename string) error
	CheckUsernameExists(username string, excludeUserID int) (bool, error)
	CheckEmailExists(email string, excludeUserID int) (bool, error)
}
