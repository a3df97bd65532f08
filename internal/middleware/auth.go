package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/obrasoft/obra-backoffice/internal/core/domain"
)

// CapabilityClaims are the JWT claims carried by treasury tokens. The
// authorization system itself lives outside this backend; we only translate
// its token into an explicit domain.Capability that services receive as a
// parameter.
type CapabilityClaims struct {
	jwt.RegisteredClaims
	CanApprove bool `json:"approve"`
	CanSettle  bool `json:"settle"`
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and places the resulting capability token in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		tokenString := parts[1]

		// Parse and validate the token
		token, err := jwt.ParseWithClaims(tokenString, &CapabilityClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*CapabilityClaims)
		if !ok || !token.Valid {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actorID := claims.Subject
		if actorID == "" {
			logger.Error("Actor ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		cap := domain.Capability{
			ActorID:    actorID,
			CanApprove: claims.CanApprove,
			CanSettle:  claims.CanSettle,
		}

		// Store the capability in the context and enrich the logger.
		ctxWithCap := context.WithValue(c.Request.Context(), capabilityCtxKey, cap)
		enrichedLogger := GetLoggerFromCtx(c.Request.Context()).With(slog.String("actor_id", actorID))
		ctxWithLoggerAndCap := context.WithValue(ctxWithCap, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctxWithLoggerAndCap)

		c.Next()
	}
}
