package post

import (
	"fmt"
	"sort"
	"time"
)

// fakeRepository est une implémentation en mémoire du Repository pour les tests.
// Chaque création avance l'horloge d'une seconde pour rendre l'ordre observable.
type fakeRepository struct {
	posts  map[int]*Post
	nextID int
	now    time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts:  make(map[int]*Post),
		nextID: 1,
		now:    time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) Create(p *Post) error {
	p.ID = r.nextID
	r.nextID++
	r.now = r.now.Add(time.Second)
	p.CreatedAt = r.now
	p.UpdatedAt = r.now
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *fakeRepository) GetByID(id int) (*Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, fmt.Errorf("article avec ID %d: %w", id, ErrNotFound)
	}
	clone := *p
	return &clone, nil
}

func (r *fakeRepository) Update(p *Post) error {
	stored, ok := r.posts[p.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = p.Title
	stored.Content = p.Content
	stored.UpdatedAt = r.now
	return nil
}

func (r *fakeRepository) Delete(id int) error {
	delete(r.posts, id)
	return nil
}

func (r *fakeRepository) List(limit, offset int) ([]*Post, error) {
	return paginate(r.sorted(func(*Post) bool { return true }), limit, offset), nil
}

func (r *fakeRepository) ListByAuthor(userID, limit, offset int) ([]*Post, error) {
	return paginate(r.sorted(func(p *Post) bool { return p.UserID == userID }), limit, offset), nil
}

func (r *fakeRepository) CountAll() (int, error) {
	return len(r.posts), nil
}

func (r *fakeRepository) CountByAuthor(userID int) (int, error) {
	count := 0
	for _, p := range r.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

// sorted retourne les articles filtrés, du plus récent au plus ancien,
// ID décroissant à date égale
func (r *fakeRepository) sorted(keep func(*Post) bool) []*Post {
	var posts []*Post
	for _, p := range r.posts {
		if keep(p) {
			clone := *p
			posts = append(posts, &clone)
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})

	return posts
}

func paginate(posts []*Post, limit, offset int) []*Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}
