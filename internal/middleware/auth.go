package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"staylix/internal/domain"
	"staylix/internal/pkg/jwt"
	"staylix/internal/pkg/response"
	"staylix/internal/repository"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

var (
	ErrUserNotFound   = errors.New("user no longer exists")
	ErrAccountBlocked = errors.New("account is blocked")
)

type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator turns a bearer token into a Principal. The user row is
// reloaded on every request so deleted or blocked accounts lose access
// before their token expires.
type Authenticator struct {
	jwt   *jwt.Service
	users UserLoader
}

func NewAuthenticator(jwtService *jwt.Service, users UserLoader) *Authenticator {
	return &Authenticator{jwt: jwtService, users: users}
}

func (a *Authenticator) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return domain.Principal{}, err
	}
	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Principal{}, ErrUserNotFound
		}
		return domain.Principal{}, err
	}
	if u.IsBlocked {
		return domain.Principal{}, ErrAccountBlocked
	}
	return domain.NewPrincipal(u), nil
}

// JWTAuth requires "Authorization: Bearer <token>" and stores the principal,
// user_id and role on the context.
func JWTAuth(auth *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			abortAuthError(c, err)
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

func abortAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidClaims):
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, ErrUserNotFound):
		response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "User not found")
	case errors.Is(err, ErrAccountBlocked):
		response.Abort(c, http.StatusForbidden, "ACCOUNT_BLOCKED", "Your account has been blocked")
	default:
		_ = c.Error(err)
		response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed")
	}
}

func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
	c.Set("user_id", p.UserID)
	c.Set("role", string(p.Role))
}

// CurrentPrincipal returns the caller set by JWTAuth.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireCapability must run after JWTAuth.
func RequireCapability(capability domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !p.Can(capability) {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}
