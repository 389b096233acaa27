// Package util holds the JSON response envelope shared by all API handlers.
package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with. Code is 0 on
// success and -1 on failure; Data carries the payload, if any.
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Data:    data,
		Message: message,
	})
}

// Error writes a failure envelope with the given HTTP status. err may be a
// string, an error, or anything else, which falls back to a generic message.
func Error(c *gin.Context, code int, err interface{}) {
	msg := ""
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = "internal server error"
	}

	zap.S().Errorf("api error (%d): %s", code, msg)

	c.JSON(code, Response{
		Code:    -1,
		Data:    nil,
		Message: msg,
	})
}
