package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pmartins-dev/roster-api/internal/domain/entity"
	"github.com/pmartins-dev/roster-api/internal/pkg/apperror"
)

// Envelope is the wire shape of every response, success or failure.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{
		Status:  http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{
		Status:  http.StatusCreated,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Status:  status,
		Message: message,
	})
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "internal server error")
}

// HandleError renders a use-case failure. Typed failures keep their status
// and message; anything else is an infrastructure error.
func HandleError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		Error(c, appErr.StatusCode, appErr.Message)
		return
	}
	InternalError(c)
}

const (
	UserIDKey    = "user_id"
	UserRoleKey  = "user_role"
	RequestIDKey = "request_id"
)

func GetUserID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get(UserIDKey); exists {
		return id.(uuid.UUID)
	}
	return uuid.Nil
}

func GetUserRole(c *gin.Context) entity.Role {
	if role, exists := c.Get(UserRoleKey); exists {
		return role.(entity.Role)
	}
	return ""
}

func GetRequestID(c *gin.Context) string {
	if id, exists := c.Get(RequestIDKey); exists {
		return id.(string)
	}
	return ""
}
