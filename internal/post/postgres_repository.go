package post

import (
	"database/sql"
	"fmt"
)

// PostgresRepository est l'implémentation PostgreSQL du Repository
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository crée un nouveau repository d'articles
func NewPostgresRepository(db *sql.DB) Repository {
	return &PostgresRepository{db: db}
}

// Create ajoute un nouvel article dans la base de données
func (r *PostgresRepository) Create(post *Post) error {
	query := `
        INSERT INTO posts (title, content, user_id)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at
    `

	return r.db.QueryRow(
		query,
		post.Title,
		post.Content,
		post.UserID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

// GetByID récupère un article par son ID
func (r *PostgresRepository) GetByID(id int) (*Post, error) {
	query := `
        SELECT p.id, p.title, p.content, p.user_id, u.username, p.created_at, p.updated_at
        FROM posts p
        JOIN users u ON u.id = p.user_id
        WHERE p.id = $1
    `

	post := &Post{}
	err := r.db.QueryRow(query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.UserID,
		&post.Author,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article avec ID %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	return post, nil
}

// Update met à jour le titre et le contenu d'un article
func (r *PostgresRepository) Update(post *Post) error {
	query := `
        UPDATE posts
        SET title = $1, content = $2, updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `

	_, err := r.db.Exec(query, post.Title, post.Content, post.ID)
	return err
}

// Delete supprime un article
func (r *PostgresRepository) Delete(id int) error {
	query := `DELETE FROM posts WHERE id = $1`

	_, err := r.db.Exec(query, id)
	return err
}

// List récupère une page d'articles, du plus récent au plus ancien.
// À date de création égale, l'ID le plus grand passe en premier.
func (r *PostgresRepository) List(limit, offset int) ([]*Post, error) {
	query := `
        SELECT p.id, p.title, p.content, p.user_id, u.username, p.created_at, p.updated_at
        FROM posts p
        JOIN users u ON u.id = p.user_id
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $1 OFFSET $2
    `

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// ListByAuthor récupère une page d'articles d'un auteur, du plus récent au plus ancien
func (r *PostgresRepository) ListByAuthor(userID, limit, offset int) ([]*Post, error) {
	query := `
        SELECT p.id, p.title, p.content, p.user_id, u.username, p.created_at, p.updated_at
        FROM posts p
        JOIN users u ON u.id = p.user_id
        WHERE p.user_id = $1
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT $2 OFFSET $3
    `

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CountAll compte tous les articles
func (r *PostgresRepository) CountAll() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count)
	return count, err
}

// CountByAuthor compte les articles d'un auteur
func (r *PostgresRepository) CountByAuthor(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

// scanPosts lit toutes les lignes d'un résultat de listing
func scanPosts(rows *sql.Rows) ([]*Post, error) {
	var posts []*Post

	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.UserID,
			&post.Author,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}
