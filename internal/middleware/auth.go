package middleware

import (
	"context"
	"strings"

	"microblog/internal/auth"
	"microblog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// identityLocal is the Fiber locals key the gate stores the caller under.
const identityLocal = "identity"

// UserSource is the read-only lookup the gate needs to resolve a token
// subject into a live account. Returns (nil, nil) when no live user exists.
type UserSource interface {
	GetActiveByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthGate resolves a request credential into an authenticated Identity.
// It holds no per-request state; verification is stateless and the user row
// is re-read on every request so tokens of deleted accounts stop working
// before they expire.
type AuthGate struct {
	codec      *auth.TokenCodec
	users      UserSource
	cookieName string
}

// NewAuthGate returns a gate using the given codec and user lookup.
func NewAuthGate(codec *auth.TokenCodec, users UserSource, cookieName string) *AuthGate {
	return &AuthGate{
		codec:      codec,
		users:      users,
		cookieName: cookieName,
	}
}

// Required enforces authentication. Missing, malformed, expired and orphaned
// credentials all produce the same 401 so callers cannot probe for accounts.
func (g *AuthGate) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := g.resolve(c)
		if err != nil {
			return models.RespondWithError(c, models.StatusForError(err), err)
		}
		storeIdentity(c, identity)
		return c.Next()
	}
}

// Optional resolves an identity when a valid credential is present and
// continues anonymously otherwise. Used by read paths that only need the
// caller to compute liked-by-me flags.
func (g *AuthGate) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, err := g.resolve(c); err == nil {
			storeIdentity(c, identity)
		}
		return c.Next()
	}
}

// resolve runs the gate's state machine: extract credential, verify token,
// look up a live user, produce the identity.
func (g *AuthGate) resolve(c *fiber.Ctx) (models.Identity, error) {
	token := g.extractToken(c)
	if token == "" {
		return models.Identity{}, models.NewUnauthenticatedError("Authentication required")
	}

	subject, err := g.codec.Verify(token)
	if err != nil {
		return models.Identity{}, models.NewUnauthenticatedError("Invalid or expired token")
	}

	user, err := g.users.GetActiveByUsername(c.UserContext(), subject)
	if err != nil {
		return models.Identity{}, err
	}
	// Unknown and soft-deleted subjects map to the same error on purpose.
	if user == nil {
		return models.Identity{}, models.NewUnauthenticatedError("Invalid or expired token")
	}

	return models.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}, nil
}

// extractToken prefers the Authorization header and falls back to the session
// cookie carrying the same token format.
func (g *AuthGate) extractToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ""
		}
		return parts[1]
	}
	return c.Cookies(g.cookieName)
}

func storeIdentity(c *fiber.Ctx, identity models.Identity) {
	c.Locals(identityLocal, identity)
	// Make the user id visible to the context-aware logger.
	c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, identity.UserID))
}

// IdentityFromCtx returns the identity stored by the gate, if any.
func IdentityFromCtx(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(identityLocal).(models.Identity)
	return identity, ok
}
