package ports

import (
	"context"

	"github.com/docstream/document-platform/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
// Insert must enforce username uniqueness at the store level (unique index)
// and return domain.ErrUserExists on a duplicate; the service-level
// existence pre-check is a fast path only.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
