package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myclassroom/assessment-api/internal/models"
	appErrors "github.com/myclassroom/assessment-api/pkg/errors"
)

// Envelope is the wire contract shared by every endpoint: a success flag, a
// human-readable (Indonesian) message, the payload, and optional pagination
// metadata. Error responses carry only {success:false, message}.
type Envelope struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
}

// JSON sends a success response with an optional message.
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Paginated sends a success response including pagination metadata.
func Paginated(c *gin.Context, data interface{}, pagination *models.Pagination, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: pagination, Message: message})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusCreated, data, message)
}

// Error sends an error response. Only the message is exposed; the typed code
// and wrapped cause stay server-side.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}
