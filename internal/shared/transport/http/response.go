package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"shamtool/internal/shared/transport"
)

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func Success(data any) Response {
	return Response{Code: transport.OK, Msg: "ok", Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

func OK(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, Success(data))
}

// Fail aborts the chain with an error envelope.
func Fail(c *gin.Context, status, code int, msg string) {
	c.AbortWithStatusJSON(status, Error(code, msg))
}
