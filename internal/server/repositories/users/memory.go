package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
)

// MemoryRepository keeps users in a map. A single mutex covers the whole
// read-modify-write in Modify.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.users[user.UserName] = user.Clone()
	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (r *MemoryRepository) Modify(ctx context.Context, userName string, fn ModifyFunc) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}

	working := stored.Clone()
	changed, err := fn(working)
	if err != nil {
		return nil, err
	}
	if changed {
		r.users[userName] = working.Clone()
	}
	return working, nil
}
