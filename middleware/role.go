package middleware

import (
	"quickcourt/models"
	"quickcourt/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits callers whose canonical role is one of roles. Client
// aliases such as facility_owner are translated by models.ParseRole here, so
// routes only ever name canonical roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		raw := c.GetString(CtxRole)
		if raw == "" {
			utils.RespondError(c, utils.Unauthorized("unauthorized"))
			return
		}
		role, ok := models.ParseRole(raw)
		if !ok || !allowed[role] {
			utils.RespondError(c, utils.Forbidden("forbidden"))
			return
		}
		c.Next()
	}
}
