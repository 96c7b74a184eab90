package users

import (
	"context"

	"github.com/mihailvs/docshare/internal/server/models"
)

// Repository is the persistence boundary for user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
