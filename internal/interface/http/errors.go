package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/response"
)

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/api/login"

// writeError maps use case errors onto HTTP responses. Anything that is not
// a known domain error is logged and answered with 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusUnprocessableEntity, "password does not meet the policy", gin.H{"violations": verr.Violations})
	case errors.Is(err, application.ErrDuplicateUsername):
		response.Error[any](c, http.StatusConflict, "Username already exists.", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "Invalid username or password.", nil)
	case errors.Is(err, application.ErrUnauthenticated):
		response.Error[any](c, http.StatusUnauthorized, "login required", gin.H{"redirect": LoginPath})
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "admin privileges required", nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "User not found.", nil)
	case errors.Is(err, application.ErrProtectedAccount):
		response.Error[any](c, http.StatusForbidden, "Cannot delete main admin!", nil)
	default:
		if logger != nil {
			helpers.LogError(logger, "request failed", err, logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			})
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
