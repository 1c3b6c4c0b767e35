// Package sessions stores server-side login sessions referenced by the
// signed session cookie.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	// Find returns common.ErrorNotFound for unknown ids.
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired removes sessions that expired at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
