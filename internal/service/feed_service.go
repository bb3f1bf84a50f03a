package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

type FeedService struct {
	postRepo repository.PostRepository
}

type ListFeedInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewFeedService(postRepo repository.PostRepository) *FeedService {
	return &FeedService{postRepo: postRepo}
}

// ListFeed returns top-level posts, newest first.
func (s *FeedService) ListFeed(ctx context.Context, in ListFeedInput) ([]*models.Post, error) {
	return s.postRepo.ListTopLevel(ctx, in.Limit, in.Offset, in.CurrentUserID)
}

// GetPost returns a single post by its public identifier.
func (s *FeedService) GetPost(ctx context.Context, uid string, currentUserID uint) (*models.Post, error) {
	if err := validation.ValidatePublicID(uid); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.postRepo.GetByUID(ctx, uid, currentUserID)
}

// ListReplies returns the direct replies to a post, oldest first.
func (s *FeedService) ListReplies(ctx context.Context, parentUID string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if err := validation.ValidatePublicID(parentUID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.postRepo.ListReplies(ctx, parentUID, limit, offset, currentUserID)
}
