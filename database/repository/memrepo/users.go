package memrepo

import (
	"context"
	"strings"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Users struct {
	s *store[models.User]
}

func NewUsers() *Users {
	return &Users{s: newStore[models.User]()}
}

func (r *Users) EnsureIndexes(context.Context) error { return nil }

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.s.items {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.put(u.ID, copyOf(u))
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyOf(u), nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.s.items {
		if u.Email == email {
			return copyOf(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) UpdateSetDocument(_ context.Context, id string, updateDoc bson.M) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	return applySet(u, updateDoc)
}

func (r *Users) SetReliability(_ context.Context, id string, score int, cancellationsDelta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ReliabilityScore = &score
	u.Cancellations += cancellationsDelta
	return nil
}

func userMatches(u *models.User, f models.UserFilter) bool {
	if f.Role != "" && u.Role != f.Role {
		return false
	}
	if f.Banned != nil && u.Banned != *f.Banned {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(u.Name), q) && !strings.Contains(u.Email, q) {
			return false
		}
	}
	return true
}

func (r *Users) List(_ context.Context, f models.UserFilter) ([]models.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []models.User
	r.s.each(func(u *models.User) {
		if userMatches(u, f) {
			all = append(all, *u)
		}
	})
	skip, _, limit := repository.Paginate(f.Page, f.Limit)
	out := []models.User{}
	for i := int(skip); i < len(all) && len(out) < limit; i++ {
		out = append(out, all[i])
	}
	return out, int64(len(all)), nil
}

func (r *Users) Count(_ context.Context, f models.UserFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	r.s.each(func(u *models.User) {
		if userMatches(u, f) {
			n++
		}
	})
	return n, nil
}
