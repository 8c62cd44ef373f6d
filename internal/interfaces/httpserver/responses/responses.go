package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
)

// ErrorResponse is the error payload returned to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleError maps domain errors onto HTTP status codes. Validation
// failures are client errors, authorization denials are forbidden, blocked
// deletes are conflicts and everything unexpected is an internal error.
func HandleError(c *gin.Context, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}

	var denial *authz.Error
	if errors.As(err, &denial) {
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: denial.Error()})
		return
	}

	if errors.Is(err, user.ErrDeleteConflict) {
		c.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{Error: user.ErrDeleteConflict.Error()})
		return
	}

	var loginErr *identity.LoginError
	if errors.As(err, &loginErr) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: loginErr.Message})
		return
	}

	var passwordErr *identity.ChangePasswordError
	if errors.As(err, &passwordErr) {
		status := http.StatusBadRequest
		if passwordErr.Message == "Unauthorized." {
			status = http.StatusUnauthorized
		}
		c.AbortWithStatusJSON(status, ErrorResponse{Error: passwordErr.Message})
		return
	}

	var registrationErr *identity.RegistrationError
	if errors.As(err, &registrationErr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: registrationErr.Message})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
