package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/freelance-marketplace-api/internal/errors"
	"github.com/yukikurage/freelance-marketplace-api/internal/middleware"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

// respondError maps a service error onto its HTTP status. Unexpected errors
// are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, services.Message(err, ""))
	case errors.Is(err, services.ErrUnauthorized):
		apierrors.Unauthorized(c, services.Message(err, ""))
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, services.Message(err, ""))
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, services.Message(err, ""))
	default:
		log.Printf("[%s] %s %s failed: %v", middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
		apierrors.InternalError(c, "")
	}
}
