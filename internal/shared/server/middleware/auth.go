package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
)

// Auth resolves the caller's identity: a Bearer JWT for signed-in users or
// an X-Guest-Id header for anonymous sessions. Guest IDs are namespaced
// with a "guest:" prefix so they can never collide with OAuth subjects.
func Auth(env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/google/") {
			c.Next()
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			claims, ok := bearerClaims(header)
			if !ok {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			setIdentity(c, claims)
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader("X-Guest-Id"))
		if guestID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
			return
		}
		c.Set(userIDKey, "guest:"+guestID)
		c.Set("isGuest", true)
		c.Next()
	}
}

func bearerClaims(header string) (auth.Claims, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Claims{}, false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := auth.VerifyJWT(token)
	if err != nil {
		return auth.Claims{}, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims auth.Claims) {
	c.Set(userIDKey, claims.Sub)
	if claims.Email != "" {
		c.Set(userEmailKey, claims.Email)
	}
	if claims.Name != "" {
		c.Set(userNameKey, claims.Name)
	}
	if claims.Picture != "" {
		c.Set(userPictureKey, claims.Picture)
	}
	c.Set("isGuest", false)
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	return stringFromContext(c, userIDKey)
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	return stringFromContext(c, userEmailKey)
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	return stringFromContext(c, userNameKey)
}

// UserPictureFromContext fetches the user picture set by the auth middleware.
func UserPictureFromContext(c *gin.Context) string {
	return stringFromContext(c, userPictureKey)
}

// GuestFromContext reports whether the request carries a guest identity.
func GuestFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get("isGuest")
	guest, ok := val.(bool)
	return ok && guest
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(key)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
