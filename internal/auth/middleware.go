package auth

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/KartikTulsian/karyasetu/internal/errors"
	"github.com/KartikTulsian/karyasetu/internal/logger"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextClaims = "auth_claims"
)

// AuthMiddleware provides JWT authentication middleware
type AuthMiddleware struct {
	service *AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(service *AuthService) *AuthMiddleware {
	return &AuthMiddleware{service: service}
}

// RequireAuth validates JWT tokens and sets user context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			logger.WithContext(c.Request.Context()).WithError(err).Debug("request rejected by auth middleware")
			abortUnauthenticated(c, err)
			return
		}

		m.setIdentity(c, claims)
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*AuthClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.ErrMissingAuthHeader
	}

	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return nil, apperrors.ErrMalformedAuthToken
	}

	return m.service.ValidateJWT(strings.TrimSpace(tokenString))
}

func (m *AuthMiddleware) setIdentity(c *gin.Context, claims *AuthClaims) {
	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextEmail, claims.Email)
	c.Set(ContextClaims, claims)
	c.Request = c.Request.WithContext(logger.ContextWithUser(c.Request.Context(), claims.Subject, claims.Email))
}

// abortUnauthenticated writes the 401 envelope. Token parsing details stay in the logs.
func abortUnauthenticated(c *gin.Context, err error) {
	message := apperrors.ErrInvalidToken.Error()
	if errors.Is(err, apperrors.ErrMissingAuthHeader) || errors.Is(err, apperrors.ErrMalformedAuthToken) {
		message = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"kind":    apperrors.KindUnauthenticated,
		"error":   message,
	})
}

// GetUserID is a helper function to extract the caller identity from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	return id, ok && id != ""
}

// GetUserEmail is a helper function to extract user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(ContextEmail)
	if !exists {
		return "", false
	}

	emailStr, ok := email.(string)
	return emailStr, ok
}

// GetAuthClaims is a helper function to extract full auth claims from context
func GetAuthClaims(c *gin.Context) (*AuthClaims, bool) {
	claims, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}

	authClaims, ok := claims.(*AuthClaims)
	return authClaims, ok
}
