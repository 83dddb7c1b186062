package services

import (
	"context"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
)

type UserService interface {
	// Register creates the user and returns it with a freshly issued token.
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
