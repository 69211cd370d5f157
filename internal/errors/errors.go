package errors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/stwalsh4118/vanprop/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound       = "NOT_FOUND"
	ErrBadRequest     = "BAD_REQUEST"
	ErrConflict       = "CONFLICT"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
	ErrValidation     = "VALIDATION_ERROR"
)

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Error     string                 `json:"error,omitempty"`
	Code      string                 `json:"code"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Stack     string                 `json:"stack,omitempty"`
}

func respond(c *gin.Context, status int, resp ErrorResponse) {
	resp.Success = false
	resp.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

func logFields(c *gin.Context, message string) map[string]interface{} {
	return map[string]interface{}{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Resource not found", logFields(c, message))
	}

	respond(c, http.StatusNotFound, ErrorResponse{
		Message: message,
		Code:    ErrNotFound,
	})
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	if log := middleware.GetLogger(c); log != nil {
		fields := logFields(c, message)
		if details != nil {
			fields["details"] = details
		}
		log.Warn("Bad request", fields)
	}

	respond(c, http.StatusBadRequest, ErrorResponse{
		Message: message,
		Code:    ErrBadRequest,
		Details: details,
	})
}

// Conflict returns a 409 Conflict error response.
func Conflict(c *gin.Context, message string) {
	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Conflict", logFields(c, message))
	}

	respond(c, http.StatusConflict, ErrorResponse{
		Message: message,
		Code:    ErrConflict,
	})
}

// InternalServerError returns a 500 response. The underlying error is always
// logged and only echoed to the client when debug errors are enabled.
func InternalServerError(c *gin.Context, message string, err error) {
	if log := middleware.GetLogger(c); log != nil {
		log.Error("Internal server error", err, logFields(c, message))
	}

	resp := ErrorResponse{
		Message: message,
		Code:    ErrInternalServer,
	}
	if err != nil && middleware.DebugErrorsEnabled(c) {
		resp.Error = err.Error()
	}
	respond(c, http.StatusInternalServerError, resp)
}

// ValidationError returns a 400 response listing the offending fields.
// When every failure is a missing required field the message names them.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{})
	var missing []string
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
		if err.Tag() == "required" {
			missing = append(missing, err.Field())
		}
	}

	message := "Validation failed for one or more fields"
	if len(missing) == len(validationErrors) {
		message = MissingFieldsMessage(missing)
	}

	if log := middleware.GetLogger(c); log != nil {
		fields := logFields(c, message)
		fields["fields"] = details
		log.Warn("Validation error", fields)
	}

	respond(c, http.StatusBadRequest, ErrorResponse{
		Message: message,
		Code:    ErrValidation,
		Details: details,
	})
}

// BindError reports a request binding failure. Validator failures are listed
// per field; malformed bodies and type mismatches get a generic message.
func BindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		ValidationError(c, validationErrors)
		return
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		BadRequest(c, "Invalid value for field "+typeErr.Field, nil)
	case errors.Is(err, io.EOF):
		BadRequest(c, "Request body is required", nil)
	default:
		BadRequest(c, "Invalid request body", map[string]interface{}{"reason": err.Error()})
	}
}

// MissingFieldsMessage formats the names of absent required fields.
func MissingFieldsMessage(fields []string) string {
	sorted := append([]string(nil), fields...)
	sort.Strings(sorted)
	if len(sorted) == 1 {
		return "Missing required field: " + sorted[0]
	}
	return "Missing required fields: " + strings.Join(sorted, ", ")
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
