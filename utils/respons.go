package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Success: false,
		Message: err.Error(),
	})
}

// RespondServerError hides the failure behind a generic message and keeps the detail in "error".
func RespondServerError(c *gin.Context, err error) {
	ErrorLogger.WithField("path", c.Request.URL.Path).Errorf("server error: %v", err)
	c.JSON(http.StatusInternalServerError, JSONResponse{
		Success: false,
		Message: "Server error",
		Error:   err.Error(),
	})
}
