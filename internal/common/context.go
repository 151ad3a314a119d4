package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// ErrorResponse is the JSON error envelope every handler returns.
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

func NewErrorResponse(code, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

func SendValidationError(c echo.Context, field, message string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("VALIDATION_ERROR", "Validation failed", map[string]string{field: message}))
}

func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, NewErrorResponse("CLIENT_ERROR", message, nil))
}

func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("SERVER_ERROR", message, nil))
}

func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, NewErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, NewErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

func SendForbiddenError(c echo.Context, message string) error {
	return c.JSON(http.StatusForbidden, NewErrorResponse("FORBIDDEN", message, nil))
}

// GetUserIDFromContext extracts the authenticated user id placed in the
// request context by the JWT middleware.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID returns a child context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// ValidateUUID parses an id string after trimming whitespace.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}
	return id, nil
}

func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

func ValidatePositiveFloat(value float64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	return nil
}

// ValidatePaginationParams clamps page/perPage to sane bounds.
func ValidatePaginationParams(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// SanitizeSearchQuery strips LIKE wildcards from user-supplied search
// text before it reaches an ILIKE pattern.
func SanitizeSearchQuery(query string) string {
	query = strings.TrimSpace(query)
	query = strings.ReplaceAll(query, "%", "")
	query = strings.ReplaceAll(query, "_", "")
	if len(query) > 100 {
		query = query[:100]
	}
	return query
}

// StartOfDay truncates t to local midnight. Summary bucketing and the
// overdue sweep both depend on this boundary, so imported dates must be
// constructed the same way.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns local midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
