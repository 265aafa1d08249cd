package middleware

import (
	"errors"
	"net/http"
	"time"

	"meal-market/config"
	"meal-market/gateway"
	"meal-market/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const sessionKey = "session"

// GenerateToken creates a signed JWT for a given user
func GenerateToken(user *models.User) (string, error) {
	claims := gateway.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}

// Sessions resolves the caller's identity once per request and stashes it
// in the context. A resolver failure is treated exactly like no session:
// the gateway must fail closed to login, never open to Allow.
func Sessions(resolver gateway.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolver.Resolve(c.Request)
		if err != nil && !errors.Is(err, gateway.ErrNoSession) {
			zap.L().Error("session resolution failed, treating as anonymous", zap.Error(err))
			session = nil
		}
		if session != nil {
			c.Set(sessionKey, session)
		}
		c.Next()
	}
}

// Gate applies the access gateway's decision to the request: either the
// request proceeds or it is redirected, never both.
func Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gateway.Authorize(c.Request.URL.Path, SessionFrom(c))
		if !decision.Allowed {
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionFrom returns the resolved session, or nil for anonymous callers.
func SessionFrom(c *gin.Context) *gateway.Session {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	return val.(*gateway.Session)
}
