package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/cduffaut/microblog/internal/user"
)

var errSMTPDown = errors.New("smtp indisponible")

// fakeUserRepository est une implémentation en mémoire de user.Repository pour les tests
type fakeUserRepository struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func (r *fakeUserRepository) Create(u *models.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeUserRepository) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("utilisateur avec ID %d: %w", id, user.ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepository) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("utilisateur %s: %w", username, user.ErrNotFound)
}

func (r *fakeUserRepository) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("email %s: %w", email, user.ErrNotFound)
}

func (r *fakeUserRepository) UpdatePassword(id int, password string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Password = password
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepository) UpdateAccountInfo(id int, username, email string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Username = username
	u.Email = email
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepository) UpdateProfileImage(id int, filename string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.ProfileImage = &filename
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepository) CheckUsernameExists(username string, excludeUserID int) (bool, error) {
	for _, u := range r.users {
		if u.Username == username && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepository) CheckEmailExists(email string, excludeUserID int) (bool, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

// fakeEmailSender enregistre les emails envoyés au lieu de les expédier
type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	to       string
	username string
	link     string
}

func (s *fakeEmailSender) SendPasswordResetEmail(to, username, resetLink string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{to: to, username: username, link: resetLink})
	return nil
}
