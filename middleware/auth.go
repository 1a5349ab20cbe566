package middleware

import (
	"context"
	"net/http"
	"strings"

	"quickcourt/models"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Authenticate.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxUser   = "user"
)

// UserLoader resolves the account behind a verified token. The user service
// satisfies it and serves repeat lookups from Redis.
type UserLoader interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

var errBanned = utils.NewCodedError(http.StatusForbidden, "BANNED", "this account has been banned")

// Authenticate requires a Bearer JWT and loads its user. The role placed in
// the context comes from the stored user, not from the token.
func Authenticate(users UserLoader) gin.HandlerFunc {
	return authenticate(users, false)
}

// AuthenticateQuery also accepts the token as a `token` query parameter, for
// clients such as browser WebSockets that cannot set headers.
func AuthenticateQuery(users UserLoader) gin.HandlerFunc {
	return authenticate(users, true)
}

func authenticate(users UserLoader, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" && allowQuery {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			utils.RespondError(c, utils.Unauthorized("unauthorized"))
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.GetLogger().Debug("rejected token", zap.Error(err))
			utils.RespondError(c, utils.Unauthorized("invalid token"))
			return
		}

		u, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			utils.RespondError(c, utils.Unauthorized("unauthorized"))
			return
		}
		if u.Banned {
			utils.RespondError(c, errBanned)
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxRole, string(u.Role))
		c.Set(CtxUser, u)
		c.Next()
	}
}

// OptionalAuthenticate identifies the caller when a valid token is present
// and lets anonymous requests through untouched.
func OptionalAuthenticate(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if u, err := users.GetUserByID(c.Request.Context(), claims.UserID); err == nil && u != nil && !u.Banned {
			c.Set(CtxUserID, u.ID)
			c.Set(CtxRole, string(u.Role))
			c.Set(CtxUser, u)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// UserID returns the authenticated user's id, or "" outside Authenticate.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// Role returns the canonical role of the caller.
func Role(c *gin.Context) models.Role {
	r, _ := models.ParseRole(c.GetString(CtxRole))
	return r
}

// CurrentUser returns the user loaded by Authenticate.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
