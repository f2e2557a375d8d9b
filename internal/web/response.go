package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the JSON body of every API response.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Code: http.StatusOK, Message: "success", Data: data})
}

func apiError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, envelope{Code: code, Message: message})
}
