package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/alumni-connect-api/internal/authz"
	"github.com/noah-isme/alumni-connect-api/internal/middleware"
	"github.com/noah-isme/alumni-connect-api/internal/models"
	appErrors "github.com/noah-isme/alumni-connect-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// identityFromContext resolves the caller into an authorization identity.
// Nil when the request carried no valid token.
func identityFromContext(c *gin.Context) *authz.Identity {
	return authz.FromClaims(claimsFromContext(c))
}

// pathID parses a numeric :id style path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
