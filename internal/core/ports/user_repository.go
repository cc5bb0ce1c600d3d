package ports

import (
	"context"

	"github.com/sirpyerre/forum-api/internal/core/domain"
)

// UserRepository persists forum users.
type UserRepository interface {
	// Create stores the user and returns its new identifier.
	// A taken username yields domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs fetches every existing user among ids in a single round trip.
	// Unknown ids are left out of the result.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
}
