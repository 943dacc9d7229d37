package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/cduffaut/microblog/internal/models"
	"github.com/cduffaut/microblog/internal/validation"
	"github.com/stretchr/testify/require"
)

// memoryRepository est une implémentation en mémoire du Repository pour les tests
type memoryRepository struct {
	users  map[int]*models.User
	nextID int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{users: make(map[int]*models.User), nextID: 1}
}

func (r *memoryRepository) Create(u *models.User) error {
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memoryRepository) GetByID(id int) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("utilisateur avec ID %d: %w", id, ErrNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *memoryRepository) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("utilisateur %s: %w", username, ErrNotFound)
}

func (r *memoryRepository) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("email %s: %w", email, ErrNotFound)
}

func (r *memoryRepository) UpdatePassword(id int, password string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password = password
	return nil
}

func (r *memoryRepository) UpdateAccountInfo(id int, username, email string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Username = username
	u.Email = email
	return nil
}

func (r *memoryRepository) UpdateProfileImage(id int, filename string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ProfileImage = &filename
	return nil
}

func (r *memoryRepository) CheckUsernameExists(username string, excludeUserID int) (bool, error) {
	for _, u := range r.users {
		if u.Username == username && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) CheckEmailExists(email string, excludeUserID int) (bool, error) {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeUserID {
			return true, nil
		}
	}
	return false, nil
}

func seedUser(t *testing.T, repo *memoryRepository, username, email string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: email, Password: "hash"}
	require.NoError(t, repo.Create(u))
	return u
}

func TestAccountService_UpdateAccount(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewAccountService(repo, t.TempDir())

	alice := seedUser(t, repo, "alice", "a@x.com")

	// le nom d'utilisateur et l'email sont mis a jour independamment
	require.NoError(t, svc.UpdateAccount(alice.ID, "alice2", "alice2@x.com"))

	stored, err := repo.GetByID(alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice2", stored.Username)
	require.Equal(t, "alice2@x.com", stored.Email)
}

func TestAccountService_UpdateAccount_KeepOwnValues(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewAccountService(repo, t.TempDir())

	alice := seedUser(t, repo, "alice", "a@x.com")

	// resoumettre ses propres valeurs n'est pas un doublon
	require.NoError(t, svc.UpdateAccount(alice.ID, "alice", "a@x.com"))
}

func TestAccountService_UpdateAccount_DuplicateUsername(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewAccountService(repo, t.TempDir())

	alice := seedUser(t, repo, "alice", "a@x.com")
	seedUser(t, repo, "bob", "b@x.com")

	err := svc.UpdateAccount(alice.ID, "bob", "a@x.com")
	var fieldErr validation.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "username", fieldErr.Field)

	// rien n'a change
	stored, err2 := repo.GetByID(alice.ID)
	require.NoError(t, err2)
	require.Equal(t, "alice", stored.Username)
}

func TestAccountService_UpdateAccount_DuplicateEmail(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewAccountService(repo, t.TempDir())

	alice := seedUser(t, repo, "alice", "a@x.com")
	seedUser(t, repo, "bob", "b@x.com")

	err := svc.UpdateAccount(alice.ID, "alice", "b@x.com")
	var fieldErr validation.ValidationError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "email", fieldErr.Field)
}

func TestAccountService_UpdateAccount_InvalidFields(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewAccountService(repo, t.TempDir())

	alice := seedUser(t, repo, "alice", "a@x.com")

	var fieldErr validation.ValidationError
	require.ErrorAs(t, svc.UpdateAccount(alice.ID, "al", "a@x.com"), &fieldErr)
	require.ErrorAs(t, svc.UpdateAccount(alice.ID, "alice", "pas-un-email"), &fieldErr)
}
