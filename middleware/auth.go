package middleware

import (
	"context"
	"strings"

	"food-catalog-api/apperr"
	"food-catalog-api/models"
	"food-catalog-api/pkg/resp"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Authenticator is the part of the auth service the gateway needs
type Authenticator interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	RequireAdmin(identity *models.User) error
}

// AuthRequired validates the bearer token and puts the caller's identity on the context
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			resp.Abort(c, apperr.Unauthorized("No token, not authorized"))
			return
		}
		user, err := auth.VerifyToken(c.Request.Context(), token)
		if err != nil {
			resp.Abort(c, err)
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired
func AdminRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c)
		if err := auth.RequireAdmin(user); err != nil {
			resp.Abort(c, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity AuthRequired attached, if any
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// bearerToken expects "<scheme> <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
