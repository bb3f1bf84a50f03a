package service

import (
	"context"
	"errors"
	"testing"

	"microblog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn              func(context.Context, *models.User) error
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getActiveByUsernameFn func(context.Context, string) (*models.User, error)
	getProfileFn          func(context.Context, string) (*models.User, error)
	softDeleteFn          func(context.Context, uint) error
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getActiveByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.getProfileFn(ctx, username)
}
func (s *userRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:              func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:             func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getActiveByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getProfileFn:          func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		softDeleteFn:          func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post, string) error
	getByUIDFn     func(context.Context, string, uint) (*models.Post, error)
	listTopLevelFn func(context.Context, int, int, uint) ([]*models.Post, error)
	listRepliesFn  func(context.Context, string, int, int, uint) ([]*models.Post, error)
	listByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post, parentUID string) error {
	return s.createFn(ctx, post, parentUID)
}
func (s *postRepoStub) GetByUID(ctx context.Context, uid string, currentUserID uint) (*models.Post, error) {
	return s.getByUIDFn(ctx, uid, currentUserID)
}
func (s *postRepoStub) ListTopLevel(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listTopLevelFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) ListReplies(ctx context.Context, parentUID string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listRepliesFn(ctx, parentUID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listByUserIDFn(ctx, userID, limit, offset, currentUserID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(_ context.Context, _ *models.Post, _ string) error { return nil },
		getByUIDFn:     func(_ context.Context, _ string, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listTopLevelFn: func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listRepliesFn:  func(_ context.Context, _ string, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	likeFn   func(context.Context, uint, string) (*models.Like, error)
	unlikeFn func(context.Context, uint, string) (*models.Like, error)
}

func (s *likeRepoStub) Like(ctx context.Context, userID uint, postUID string) (*models.Like, error) {
	return s.likeFn(ctx, userID, postUID)
}
func (s *likeRepoStub) Unlike(ctx context.Context, userID uint, postUID string) (*models.Like, error) {
	return s.unlikeFn(ctx, userID, postUID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		likeFn:   func(_ context.Context, _ uint, _ string) (*models.Like, error) { return &models.Like{}, nil },
		unlikeFn: func(_ context.Context, _ uint, _ string) (*models.Like, error) { return &models.Like{Deleted: true}, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertUnauthenticatedError asserts that err is an AppError with code UNAUTHENTICATED.
func assertUnauthenticatedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, models.CodeUnauthenticated, appErr.Code)
}
