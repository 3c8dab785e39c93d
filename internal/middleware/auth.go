package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukihira/project-management-api/internal/authz"
	"github.com/yukihira/project-management-api/internal/constants"
	apierrors "github.com/yukihira/project-management-api/internal/errors"
	"github.com/yukihira/project-management-api/internal/services"
)

// RequireAuth validates the bearer token and stores the resolved actor in
// the request context. Every protected handler reads the actor from here;
// no global state carries identity.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			apierrors.Unauthorized(c, "Authorization token required")
			c.Abort()
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		user, err := authService.GetUserFromToken(token)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyActor, authz.Actor{ID: user.ID, Role: user.Role})
		c.Next()
	}
}

// CurrentActor retrieves the authenticated actor from the request context
func CurrentActor(c *gin.Context) (authz.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return authz.Actor{}, false
	}

	actor, ok := value.(authz.Actor)
	return actor, ok
}
