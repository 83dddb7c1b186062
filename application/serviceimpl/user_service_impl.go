package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"task-manager-api/domain/dto"
	"task-manager-api/domain/models"
	"task-manager-api/domain/repositories"
	"task-manager-api/domain/services"
	"task-manager-api/pkg/logger"
	"task-manager-api/pkg/password"
	"task-manager-api/pkg/token"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	tokens   *token.Manager
}

func NewUserService(userRepo repositories.UserRepository, tokens *token.Manager) services.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to check existing user", "error", err)
		return nil, "", err
	}
	if exists {
		logger.WarnContext(ctx, "Username or email already exists", "username", req.Username)
		return nil, "", services.ErrUserExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repositories.ErrDuplicate) {
			logger.WarnContext(ctx, "Duplicate user on insert", "username", req.Username)
			return nil, "", services.ErrUserExists
		}
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, "", err
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return user, tokenString, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// burn a comparable amount of time so response latency
			// does not reveal whether the username exists
			password.Verify(req.Password, dummyHash())
			logger.WarnContext(ctx, "Login failed - unknown username")
			return nil, "", services.ErrInvalidCredentials
		}
		logger.ErrorContext(ctx, "Failed to look up user", "error", err)
		return nil, "", err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		logger.WarnContext(ctx, "Login failed - password mismatch", "user_id", user.ID)
		return nil, "", services.ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to issue token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return user, tokenString, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

var (
	dummyOnce   sync.Once
	dummyDigest string
)

func dummyHash() string {
	dummyOnce.Do(func() {
		dummyDigest, _ = password.Hash(uuid.NewString())
	})
	return dummyDigest
}
