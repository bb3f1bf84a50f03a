package repository

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Like(ctx context.Context, userID uint, postUID string) (*models.Like, error)
	Unlike(ctx context.Context, userID uint, postUID string) (*models.Like, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like records an active like from userID on the post identified by postUID
// and bumps the post's like_count in the same transaction, returning the new
// like row. A second active like by the same user is rejected; the partial
// unique index on (user_id, post_id) WHERE deleted = false backstops the
// pre-check under concurrency.
func (r *likeRepository) Like(ctx context.Context, userID uint, postUID string) (*models.Like, error) {
	var like models.Like

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").
			Where("uid = ? AND deleted = ?", postUID, false).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postUID)
			}
			return storageError(err)
		}

		var active int64
		if err := tx.Model(&models.Like{}).
			Where("user_id = ? AND post_id = ? AND deleted = ?", userID, post.ID, false).
			Count(&active).Error; err != nil {
			return storageError(err)
		}
		if active > 0 {
			return models.NewConflictError(fmt.Sprintf("Post %s already liked", postUID))
		}

		like = models.Like{UserID: userID, PostID: post.ID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError(fmt.Sprintf("Post %s already liked", postUID))
			}
			return storageError(err)
		}

		bump := tx.Model(&models.Post{}).
			Where("id = ? AND deleted = ?", post.ID, false).
			UpdateColumn("like_count", gorm.Expr("like_count + 1"))
		if bump.Error != nil {
			return storageError(bump.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, postUID)
	cache.InvalidateFeed(ctx)
	return &like, nil
}

// Unlike soft-deletes the caller's active like, decrements the post's
// like_count, and returns the withdrawn like row. The row is kept as
// history; a later re-like creates a fresh one.
func (r *likeRepository) Unlike(ctx context.Context, userID uint, postUID string) (*models.Like, error) {
	var like models.Like

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").
			Where("uid = ? AND deleted = ?", postUID, false).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postUID)
			}
			return storageError(err)
		}

		if err := tx.Where("user_id = ? AND post_id = ? AND deleted = ?", userID, post.ID, false).
			First(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Like", postUID)
			}
			return storageError(err)
		}

		res := tx.Model(&models.Like{}).
			Where("id = ? AND deleted = ?", like.ID, false).
			UpdateColumn("deleted", true)
		if res.Error != nil {
			return storageError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Like", postUID)
		}
		like.Deleted = true

		dec := tx.Model(&models.Post{}).
			Where("id = ? AND deleted = ?", post.ID, false).
			UpdateColumn("like_count", gorm.Expr("like_count - 1"))
		if dec.Error != nil {
			return storageError(dec.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidatePost(ctx, postUID)
	cache.InvalidateFeed(ctx)
	return &like, nil
}
