package middleware

import (
	"net/http"

	"jewelry_store/internal/config"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	AuthUserKey  = "authUser"
	AuthRoleKey  = "authRole"
	AuthPhoneKey = "authPhone"
)

// JWTAuthMiddleware checks the bearer token and puts the shop account's id,
// role and phone on the context. Rejections are logged with their reason;
// the client only sees a generic message.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	logger := config.GetLogger()
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			deny(c, logger, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		tokenString, err := utils.BearerToken(authHeader)
		if err != nil {
			deny(c, logger, http.StatusUnauthorized, "Invalid authorization header format", err)
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			deny(c, logger, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)
		c.Set(AuthPhoneKey, claims.Phone)

		c.Next()
	}
}

// deny logs why a request was refused and aborts it with the JSON envelope.
func deny(c *gin.Context, logger *logrus.Logger, status int, message string, cause error) {
	entry := logger.WithFields(logrus.Fields{
		"module":    "middleware",
		"path":      c.Request.URL.Path,
		"client_ip": c.ClientIP(),
		"status":    status,
	})
	if id, ok := c.Get(RequestIDKey); ok {
		entry = entry.WithField("request_id", id)
	}
	if userID, ok := c.Get(AuthUserKey); ok {
		entry = entry.WithField("user_id", userID)
	}
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Warn(message)
	abort(c, status, message)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
