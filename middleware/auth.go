package middleware

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
)

const (
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// bearerToken returns the token from "Authorization: Bearer" or the session-token header.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.GetHeader("session-token")
}

// IdentifyUser attaches the caller's id and role when a valid login token is presented.
// Requests without a token pass through unchanged. With Redis configured the token must
// also have a live session.
func IdentifyUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		uid, role, err := util.ParseSessionToken(token)
		if err != nil {
			c.Next()
			return
		}
		if config.GetRedisClient() != nil {
			if _, _, err := util.LookupSession(c.Request.Context(), token); err != nil {
				c.Next()
				return
			}
		}
		c.Set(UserIDKey, uid)
		c.Set(RoleKey, role)
		c.Next()
	}
}

// GetUserID returns the id set by IdentifyUser.
func GetUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok && uid != 0
}

// GetRole returns the role set by IdentifyUser.
func GetRole(c *gin.Context) (string, bool) {
	role := c.GetString(RoleKey)
	return role, role != ""
}

// RequireAPIToken guards operator endpoints with "Authorization: Bearer <token>".
// An empty token disables the endpoint.
func RequireAPIToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			util.CallForbidden(c, util.APIErrorParams{Msg: "Endpoint disabled", Err: fmt.Errorf("api token not configured")})
			c.Abort()
			return
		}
		got := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			util.LogUnauthorizedAccess(c.ClientIP(), c.Request.URL.Path, "invalid api token")
			util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid API token", Err: fmt.Errorf("unauthorized")})
			c.Abort()
			return
		}
		c.Next()
	}
}
