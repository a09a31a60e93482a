package service

import (
	"context"

	"ripple/internal/repository"
)

// UserService exposes read operations over registered users.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsernames returns the usernames of all registered users.
func (s *UserService) ListUsernames(ctx context.Context) ([]string, error) {
	return s.userRepo.ListUsernames(ctx)
}
