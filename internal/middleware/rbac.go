package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/response"
	"github.com/stemsi/lms-backend/internal/service"
)

// RequireRole narrows an authenticated group to the given roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if !hasRole(claims, roles) {
			response.AbortFail(c, http.StatusForbidden, response.ErrRoleForbidden)
			return
		}
		c.Next()
	}
}

func hasRole(claims *service.Claims, roles []model.Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if claims.Role == r {
			return true
		}
	}
	return false
}

// CanActFor reports whether the caller may read or write data owned by
// owner. Admins act for anyone; everyone else only for themselves, matched
// on both id and role since ids are only unique within a role.
func CanActFor(claims *service.Claims, owner model.Recipient) bool {
	if claims == nil {
		return false
	}
	if claims.Role == model.RoleAdmin {
		return true
	}
	return claims.UserID == owner.UserID && claims.Role == owner.Role
}
