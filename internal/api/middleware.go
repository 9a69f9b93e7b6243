package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/services"
)

const (
	loggerKey       = "logger"
	userKey         = "user"
	requestIDHeader = "X-Request-Id"
)

// RequestLogger tags every request with an id (reusing X-Request-Id when the
// client sent one), stores a request-scoped logger and logs the outcome.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		reqLogger := logger.With("request_id", requestID)
		c.Set(loggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		reqLogger.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		)
	}
}

// Authenticate resolves an optional "Authorization: Bearer <token>" header
// into the acting user. Requests without a bearer token continue anonymously;
// a bearer token that fails validation is rejected with 401.
func Authenticate(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			c.Next()
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Set(loggerKey, loggerFrom(c).With("user_id", user.ID))
		c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailNotAuthed})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects anonymous requests and non-staff users.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		switch {
		case user == nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detailNotAuthed})
		case !user.IsStaff:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": detailForbidden})
		default:
			c.Next()
		}
	}
}

// currentUser returns the authenticated user, or nil for anonymous requests.
func currentUser(c *gin.Context) *models.User {
	if u, ok := c.Get(userKey); ok {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}
