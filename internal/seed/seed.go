// Package seed populates the database with demo data for development and
// testing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"microblog/internal/auth"
	"microblog/internal/models"
	"microblog/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DemoPassword is the login password of every seeded account.
const DemoPassword = "password123"

// Seeder creates demo data through the repository layer so the same
// counter and uniqueness rules apply as in production traffic.
type Seeder struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	likeRepo repository.LikeRepository
	rng      *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(0)
	return &Seeder{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		postRepo: repository.NewPostRepository(db),
		likeRepo: repository.NewLikeRepository(db),
		rng:      rand.New(rand.NewSource(42)),
	}
}

// Seed populates the database with demo users, posts, replies and likes.
func (s *Seeder) Seed(ctx context.Context, opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return fmt.Errorf("cleanup failed: %w", err)
		}
	}

	users, err := s.createUsers(ctx, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("seeded %d users", len(users))

	posts, err := s.createPosts(ctx, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("seeded %d posts", len(posts))

	liked, err := s.createLikes(ctx, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("seeded %d likes", liked)

	return nil
}

// ClearAll removes all seeded rows. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUsers(ctx context.Context, n int) ([]*models.User, error) {
	// One hash for all accounts; hashing is deliberately slow.
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, i))

		user := &models.User{
			Username:    username,
			Email:       fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			DisplayName: first + " " + last,
			Summary:     gofakeit.Sentence(8),
			Password:    hash,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(ctx context.Context, users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rng.Intn(len(users))]
		post := &models.Post{
			UserID: author.ID,
			Body:   gofakeit.Sentence(4 + s.rng.Intn(20)),
		}

		// Roughly a third of posts reply to an earlier one.
		parentUID := ""
		if len(posts) > 0 && s.rng.Intn(3) == 0 {
			parentUID = posts[s.rng.Intn(len(posts))].UID
		}

		if err := s.postRepo.Create(ctx, post, parentUID); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createLikes(ctx context.Context, users []*models.User, posts []*models.Post) (int, error) {
	liked := 0
	for _, post := range posts {
		for _, user := range users {
			if s.rng.Intn(5) != 0 {
				continue
			}
			if _, err := s.likeRepo.Like(ctx, user.ID, post.UID); err != nil {
				var appErr *models.AppError
				if errors.As(err, &appErr) && appErr.Code == models.CodeConflict {
					continue
				}
				return liked, err
			}
			liked++
		}
	}
	return liked, nil
}
