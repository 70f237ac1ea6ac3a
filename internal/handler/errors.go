package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// apiError is an error that carries the HTTP status it should be reported
// with. Handlers return it out of transaction closures so the rollback runs
// before any response is written.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(format string, args ...any) *apiError {
	return &apiError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

func notFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, message: message}
}

func conflict(message string) *apiError {
	return &apiError{status: http.StatusConflict, message: message}
}

// respondError writes err as a JSON error body. Anything that is not an
// apiError becomes a 500 carrying the raw error text.
func respondError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.status, gin.H{"error": apiErr.message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// bindJSON decodes the request body into out, mapping type mismatches to
// field-specific messages.
func bindJSON(c *gin.Context, out any) *apiError {
	if err := c.ShouldBindJSON(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			if strings.HasSuffix(typeErr.Field, "_rating") {
				return badRequest("%s must be a valid number", typeErr.Field)
			}
			return badRequest("%s must be of type %s", typeErr.Field, typeErr.Type)
		}
		return badRequest("Request must be JSON")
	}
	return nil
}
