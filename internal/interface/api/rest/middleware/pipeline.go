package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-resource-api/internal/domain/user"
	"user-resource-api/internal/interface/api/rest/validator"
)

// CtxTargetID holds the parsed :id of the requested user.
const CtxTargetID = "targetUserID"

type UserLookup interface {
	UserExists(ctx context.Context, id user.ID) (bool, error)
}

// NumericID rejects requests whose id path param is not a positive integer.
func NumericID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := validator.ParseID(c.Param(param))
		if !ok {
			c.AbortWithStatusJSON(
				http.StatusBadRequest,
				gin.H{"error": param + " must be a number"},
			)
			return
		}

		c.Set(CtxTargetID, id)
		c.Next()
	}
}

// UserExists requires the target user to exist in any status. Must run after NumericID.
func UserExists(lookup UserLookup, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := TargetID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing user id"})
			return
		}

		exists, err := lookup.UserExists(c.Request.Context(), id)
		if err != nil {
			logger.Error("UserExists() error", zap.Error(err), zap.Int64("user_id", int64(id)))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to get a user"})
			return
		}
		if !exists {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.Next()
	}
}

// HasPermissions lets a token act on its own user, admins on any user.
// Must run after AuthMiddleware and NumericID.
func HasPermissions() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if ok && claims.IsAdmin() {
			c.Next()
			return
		}

		id, hasID := TargetID(c)
		if !ok || !hasID || !claims.Owns(int64(id)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

func TargetID(c *gin.Context) (user.ID, bool) {
	v, ok := c.Get(CtxTargetID)
	if !ok {
		return 0, false
	}
	id, ok := v.(user.ID)
	return id, ok
}
