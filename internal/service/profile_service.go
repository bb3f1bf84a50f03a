package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

type ProfileService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

func NewProfileService(userRepo repository.UserRepository, postRepo repository.PostRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, postRepo: postRepo}
}

// GetProfile returns the public profile of a user by username.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.userRepo.GetProfile(ctx, username)
}

// GetProfilePosts returns a user's top-level posts and replies, newest first.
func (s *ProfileService) GetProfilePosts(ctx context.Context, username string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	user, err := s.userRepo.GetProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUserID(ctx, user.ID, limit, offset, currentUserID)
}
