package user

import (
	"database/sql"
	"fmt"

	"github.com/cduffaut/microblog/internal/models"
)

// PostgresRepository est l'implémentation PostgreSQL du Repository
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository crée un nouveau repository utilisateur
func NewPostgresRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

// Create ajoute un nouvel utilisateur dans la base de données
func (r *PostgresRepository) Create(user *models.User) error {
	query := `
        INSERT INTO users (username, email, password)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `

	return r.db.QueryRow(
		query,
		user.Username,
		user.Email,
		user.Password,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// GetByID récupère un utilisateur par son ID
func (r *PostgresRepository) GetByID(id int) (*models.User, error) {
	query := `
        SELECT id, username, email, password, profile_image, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	return r.scanUser(r.db.QueryRow(query, id), fmt.Sprintf("ID %d", id))
}

// GetByUsername récupère un utilisateur par son nom d'utilisateur
func (r *PostgresRepository) GetByUsername(username string) (*models.User, error) {
	query := `
        SELECT id, username, email, password, profile_image, created_at, updated_at
        FROM users
        WHERE username = $1
    `

	return r.scanUser(r.db.QueryRow(query, username), fmt.Sprintf("nom d'utilisateur %s", username))
}

// GetByEmail récupère un utilisateur par son email
func (r *PostgresRepository) GetByEmail(email string) (*models.User, error) {
	query := `
        SELECT id, username, email, password, profile_image, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	return r.scanUser(r.db.QueryRow(query, email), fmt.Sprintf("email %s", email))
}

// scanUser lit une ligne utilisateur et traduit sql.ErrNoRows en ErrNotFound
func (r *PostgresRepository) scanUser(row *sql.Row, desc string) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Password,
		&user.ProfileImage,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("utilisateur avec %s: %w", desc, ErrNotFound)
		}
		return nil, err
	}

	return user, nil
}

// UpdatePassword met à jour le mot de passe d'un utilisateur
func (r *PostgresRepository) UpdatePassword(id int, password string) error {
	query := `
        UPDATE users
        SET password = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2
    `

	_, err := r.db.Exec(query, password, id)
	return err
}

// UpdateAccountInfo met à jour le nom d'utilisateur et l'email d'un utilisateur
func (r *PostgresRepository) UpdateAccountInfo(id int, username, email string) error {
	query := `
        UPDATE users
        SET username = $1, email = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `

	_, err := r.db.Exec(query, username, email, id)
	return err
}

// UpdateProfileImage met à jour la photo de profil d'un utilisateur
func (r *PostgresRepository) UpdateProfileImage(id int, filename string) error {
	query := `
        UPDATE users
        SET profile_image = $1, updated_at = CURRENT_TIMESTAMP
        WHERE id = $2
    `

	_, err := r.db.Exec(query, filename, id)
	return err
}

// CheckUsernameExists vérifie si un nom d'utilisateur est déjà pris par un autre utilisateur
func (r *PostgresRepository) CheckUsernameExists(username string, excludeUserID int) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND id != $2)
    `

	var exists bool
	err := r.db.QueryRow(query, username, excludeUserID).Scan(&exists)
	return exists, err
}

// CheckEmailExists vérifie si un email est déjà utilisé par un autre utilisateur
func (r *PostgresRepository) CheckEmailExists(email string, excludeUserID int) (bool, error) {
	query := `
        SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)
    `

	var exists bool
	err := r.db.QueryRow(query, email, excludeUserID).Scan(&exists)
	return exists, err
}
