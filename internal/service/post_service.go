package service

import (
	"context"
	"strings"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

type PostService struct {
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
}

type CreatePostInput struct {
	Identity  models.Identity
	Body      string
	ParentUID string
}

func NewPostService(postRepo repository.PostRepository, likeRepo repository.LikeRepository) *PostService {
	return &PostService{postRepo: postRepo, likeRepo: likeRepo}
}

// CreatePost publishes a top-level post, or a reply when ParentUID is set.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	body := strings.TrimSpace(in.Body)
	if err := validation.ValidatePostBody(body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.ParentUID != "" {
		if err := validation.ValidatePublicID(in.ParentUID); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	post := &models.Post{
		UserID: in.Identity.UserID,
		Body:   body,
	}
	if err := s.postRepo.Create(ctx, post, in.ParentUID); err != nil {
		return nil, err
	}

	// Re-read for the poster association and liked flag.
	return s.postRepo.GetByUID(ctx, post.UID, in.Identity.UserID)
}

// LikePost records the caller's like on a post and returns the new like.
func (s *PostService) LikePost(ctx context.Context, identity models.Identity, postUID string) (*models.Like, error) {
	if err := validation.ValidatePublicID(postUID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.likeRepo.Like(ctx, identity.UserID, postUID)
}

// UnlikePost withdraws the caller's like from a post and returns the
// withdrawn like.
func (s *PostService) UnlikePost(ctx context.Context, identity models.Identity, postUID string) (*models.Like, error) {
	if err := validation.ValidatePublicID(postUID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.likeRepo.Unlike(ctx, identity.UserID, postUID)
}
