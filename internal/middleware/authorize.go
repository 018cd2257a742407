package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/greenops/lawncare-api/internal/constants"
	"github.com/greenops/lawncare-api/internal/rbac"
	"github.com/greenops/lawncare-api/internal/response"
	"github.com/greenops/lawncare-api/internal/services"
)

// RequirePermission resolves the caller into a local (user, organization,
// role) context and rejects the request unless the role carries the
// permission. Authorization failures short-circuit before any handler or
// store access runs.
func RequirePermission(identities *services.IdentityService, permission rbac.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := GetIdentity(c)
		if !ok {
			response.Fail(c, response.Unauthorized(""))
			c.Abort()
			return
		}

		authCtx, err := identities.ResolveCallerContext(ident, permission)
		if err != nil {
			response.HandleError(c, err, "Unable to resolve caller context.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyAuth, authCtx)
		c.Next()
	}
}

// GetAuthContext retrieves the resolved caller context from the context.
func GetAuthContext(c *gin.Context) (*services.CallerContext, bool) {
	value, exists := c.Get(constants.ContextKeyAuth)
	if !exists {
		return nil, false
	}
	authCtx, ok := value.(*services.CallerContext)
	return authCtx, ok
}
