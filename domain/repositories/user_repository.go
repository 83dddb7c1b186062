package repositories

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// ExistsByUsernameOrEmail answers the registration uniqueness check in one query.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
