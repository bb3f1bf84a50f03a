package repository

import (
	"context"
	"crypto/rand"
	"errors"

	"microblog/internal/cache"
	"microblog/internal/models"

	"gorm.io/gorm"
)

// publicIDCharset matches the URL-safe alphabet used for post identifiers.
const publicIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const (
	publicIDLength = 8
	// A fresh id is drawn and the whole transaction re-run on an id
	// collision; with 64^8 ids collisions are vanishingly rare, so the
	// bound exists only to guarantee termination.
	createAttempts = 3
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, parentUID string) error
	GetByUID(ctx context.Context, uid string, currentUserID uint) (*models.Post, error)
	ListTopLevel(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListReplies(ctx context.Context, parentUID string, limit, offset int, currentUserID uint) ([]*models.Post, error)
	ListByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts post as a top-level post, or as a reply when parentUID is
// set. The parent's reply_count bump and the child insert happen in one
// transaction; a failure at any step rolls back both, so the counter can
// never drift from the number of live children.
func (r *postRepository) Create(ctx context.Context, post *models.Post, parentUID string) error {
	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		post.ID = 0
		post.UID = newPublicID()

		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if parentUID != "" {
				var parent models.Post
				if findErr := tx.Select("id").
					Where("uid = ? AND deleted = ?", parentUID, false).
					First(&parent).Error; findErr != nil {
					if errors.Is(findErr, gorm.ErrRecordNotFound) {
						return models.NewNotFoundError("Post", parentUID)
					}
					return storageError(findErr)
				}

				// Atomic increment; concurrent replies serialize on the row.
				bump := tx.Model(&models.Post{}).
					Where("id = ? AND deleted = ?", parent.ID, false).
					UpdateColumn("reply_count", gorm.Expr("reply_count + 1"))
				if bump.Error != nil {
					return storageError(bump.Error)
				}
				if bump.RowsAffected == 0 {
					return models.NewNotFoundError("Post", parentUID)
				}
				post.ParentID = &parent.ID
			}

			if insErr := tx.Create(post).Error; insErr != nil {
				if isUniqueConstraintError(insErr) {
					return models.NewConflictError("Post identifier collision")
				}
				return storageError(insErr)
			}
			return nil
		})

		if err == nil {
			cache.InvalidateFeed(ctx)
			if parentUID != "" {
				cache.InvalidatePost(ctx, parentUID)
			}
			return nil
		}

		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeConflict {
			return err
		}
		// uid collision: retry the whole transaction with a fresh id.
	}
	return err
}

func (r *postRepository) GetByUID(ctx context.Context, uid string, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		err := r.withLiked(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Where("uid = ? AND deleted = ?", uid, false).
			First(&post).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", uid)
			}
			return storageError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(uid), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListTopLevel(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("parent_id IS NULL AND deleted = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storageError(err)
	}
	return posts, nil
}

func (r *postRepository) ListReplies(ctx context.Context, parentUID string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var parent models.Post
	if err := r.db.WithContext(ctx).Select("id").
		Where("uid = ? AND deleted = ?", parentUID, false).
		First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", parentUID)
		}
		return nil, storageError(err)
	}

	var posts []*models.Post
	err := r.withLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("parent_id = ? AND deleted = ?", parent.ID, false).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storageError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withLiked(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, storageError(err)
	}
	return posts, nil
}

// withLiked adds the liked-by-current-user flag in a single query.
// Reply and like counters are denormalized columns, so no aggregation here.
func (r *postRepository) withLiked(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select(
			"posts.*, EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ? AND likes.deleted = false) AS liked",
			currentUserID,
		)
	}
	return db.Select("posts.*, false AS liked")
}

// newPublicID draws an 8-character identifier from the URL-safe charset
// using crypto/rand. Uniqueness is enforced by the posts.uid unique index,
// not by the generator.
func newPublicID() string {
	buf := make([]byte, publicIDLength)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)
	id := make([]byte, publicIDLength)
	for i, b := range buf {
		id[i] = publicIDCharset[int(b)%len(publicIDCharset)]
	}
	return string(id)
}
