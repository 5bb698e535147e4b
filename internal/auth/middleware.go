package auth

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/entities"
)

// ContextKeyIdentity is the gin context key the guard stores the Identity under.
const ContextKeyIdentity = "auth_identity"

type identityKey struct{}

// Identity is what the guard admits a request with.
type Identity struct {
	UserID   string
	UserType entities.UserType
}

// Guard authenticates requests on protected routes. It consults the store on
// every request and caches nothing between them.
type Guard struct {
	cookie *SessionCookie
	tokens *TokenIssuer
	users  UserStore
}

// NewGuard creates a route guard.
func NewGuard(cookie *SessionCookie, tokens *TokenIssuer, users UserStore) *Guard {
	return &Guard{cookie: cookie, tokens: tokens, users: users}
}

// Authenticate runs extract, verify and resolve against the request and
// returns the identity to admit, or the reason for rejection.
func (g *Guard) Authenticate(r *http.Request) (*Identity, error) {
	raw := g.cookie.Extract(r)
	if raw == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := g.users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		// A store fault rejects the request instead of failing it.
		log.Printf("auth: failed to resolve user from token: %v", err)
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: user.ID, UserType: user.UserType}, nil
}

// Handler adapts Authenticate to gin. Rejected requests are aborted with the
// mapped status; admitted ones carry the identity in both the gin context and
// the request context.
func (g *Guard) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.Authenticate(c.Request)
		if err != nil {
			status, message := StatusFor(err)
			c.AbortWithStatusJSON(status, gin.H{
				"success": false,
				"message": message,
			})
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// WithIdentity returns a copy of ctx carrying the identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity stored by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	return identity, ok && identity != nil
}

// GetIdentity retrieves the admitted identity from the gin context.
func GetIdentity(c *gin.Context) (*Identity, bool) {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(*Identity); ok {
			return identity, true
		}
	}
	return nil, false
}

// GetUserID retrieves the authenticated user's ID. Returns "" on unguarded routes.
func GetUserID(c *gin.Context) string {
	if identity, ok := GetIdentity(c); ok {
		return identity.UserID
	}
	return ""
}
