package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-marketplace-api/internal/constants"
	apierrors "github.com/yukikurage/freelance-marketplace-api/internal/errors"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(verifier services.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.Unauthorized(c, services.ErrMissingCredential.Message)
			return
		}

		if !authenticate(c, verifier, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth resolves the principal when a bearer token is sent. A token
// that fails verification is still rejected.
func OptionalAuth(verifier services.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if ok && !authenticate(c, verifier, token) {
			return
		}
		c.Next()
	}
}

// GetPrincipal retrieves the verified principal from context
func GetPrincipal(c *gin.Context) (*services.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}

	principal, ok := value.(*services.Principal)
	return principal, ok && principal != nil
}

func authenticate(c *gin.Context, verifier services.IdentityVerifier, token string) bool {
	principal, err := verifier.Verify(c.Request.Context(), token)
	if err != nil {
		apierrors.Unauthorized(c, services.Message(err, services.ErrInvalidCredential.Message))
		return false
	}

	c.Set(constants.ContextKeyPrincipal, principal)
	return true
}

// bearerToken reports whether an Authorization header was sent and returns
// its token. A header with any other scheme counts as sent with an empty token.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	if len(header) < len(constants.BearerPrefix) || !strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		return "", true
	}
	return strings.TrimSpace(header[len(constants.BearerPrefix):]), true
}
