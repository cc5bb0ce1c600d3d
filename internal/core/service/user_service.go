package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/forum-api/internal/core/domain"
	"github.com/sirpyerre/forum-api/internal/core/ports"
	"github.com/sirpyerre/forum-api/internal/metrics"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, log: log}
}

// CreateUser registers a new username. Names outside [A-Za-z0-9]+ are refused
// before touching the store; uniqueness is left to the store's index.
func (s *userService) CreateUser(ctx context.Context, username string) (string, error) {
	if !domain.ValidUsername(username) {
		return "", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidUsername)
	}

	id, err := s.repo.Create(ctx, &domain.User{Username: username})
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Info().Str("user_id", id).Str("username", username).Msg("user created")
	return id, nil
}
