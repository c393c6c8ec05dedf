package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"frontdesk/internal/domain/user"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[user.ID]*user.User
	byEmail map[string]user.ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[user.ID]*user.User),
		byEmail: make(map[string]user.ID),
	}
}

func (r *UserRepository) ByID(ctx context.Context, id user.ID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalize(email)]
	if !ok {
		return nil, user.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*user.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	email := normalize(u.Email)
	if existing, ok := r.byEmail[email]; ok && existing != u.ID {
		return user.ErrEmailAlreadyUsed
	}
	for stored, id := range r.byEmail {
		if id == u.ID && stored != email {
			delete(r.byEmail, stored)
		}
	}
	r.byID[u.ID] = u
	r.byEmail[email] = u.ID
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
