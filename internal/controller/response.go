package controller

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint returns.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Status: status, Message: message, Data: data})
}
