// Package users stores user records: credentials, coin balance, owned tags
// and per-game highscores.
package users

import (
	"context"

	"github.com/dmitrijs2005/ecohack/internal/server/models"
)

// ModifyFunc mutates u in place and reports whether anything changed.
// Returning an error aborts the modification; nothing is persisted.
type ModifyFunc func(u *models.User) (changed bool, err error)

type Repository interface {
	// Create stores a new user. A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByLogin returns common.ErrorNotFound for unknown usernames.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	// Modify performs an atomic read-modify-write of one user record:
	// concurrent Modify calls for the same username are serialized.
	Modify(ctx context.Context, userName string, fn ModifyFunc) (*models.User, error)
}
