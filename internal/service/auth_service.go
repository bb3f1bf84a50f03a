package service

import (
	"context"
	"strings"

	"microblog/internal/auth"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/validation"
)

// invalidCredentials is returned for every login failure, whether the
// username is unknown or the password wrong, so responses do not reveal
// which accounts exist.
const invalidCredentials = "Invalid credentials"

type AuthService struct {
	userRepo repository.UserRepository
	codec    *auth.TokenCodec
}

type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAuthService(userRepo repository.UserRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{userRepo: userRepo, codec: codec}
}

// Register creates an account and signs the new user in, returning the user
// and a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = in.Username
	}

	user := &models.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		DisplayName: displayName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		return nil, "", models.NewCryptoError(err)
	}
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// Unknown users and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetActiveByUsername(ctx, in.Username)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !auth.VerifyPassword(in.Password, user.Password) {
		return nil, "", models.NewUnauthenticatedError(invalidCredentials)
	}

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		return nil, "", models.NewCryptoError(err)
	}
	return user, token, nil
}

// Refresh issues a new token for an already-authenticated identity,
// restarting the validity window.
func (s *AuthService) Refresh(identity models.Identity) (string, error) {
	token, err := s.codec.Issue(identity.Username)
	if err != nil {
		return "", models.NewCryptoError(err)
	}
	return token, nil
}

// Me returns the full account record behind an authenticated identity.
func (s *AuthService) Me(ctx context.Context, identity models.Identity) (*models.User, error) {
	return s.userRepo.GetByID(ctx, identity.UserID)
}
