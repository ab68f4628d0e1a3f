package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"shamtool/internal/shared/transport"
	"shamtool/modules/kit/logx"
	"shamtool/modules/kit/tracex"
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(data []byte) (int, error) {
	_, _ = w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AccessLog writes one access line per request, taking the biz code from the
// `code` field of a JSON response body when there is one. The request's trace
// id comes from X-Request-ID when usable and is echoed back in that header.
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		action := c.Request.Method + " " + route

		ctx := transport.NewRequestContext(c.Request.Context(), action, c.GetHeader(tracex.HeaderRequestID))
		c.Request = c.Request.WithContext(ctx)
		if traceID, ok := tracex.TraceIDFrom(ctx); ok {
			c.Header(tracex.HeaderRequestID, traceID)
		}

		bw := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = bw

		c.Next()

		if bizCode, ok := parseBizCode(bw.body.Bytes()); ok {
			transport.SetBizCode(ctx, transport.BizCode(bizCode))
		} else if c.Writer.Status() >= http.StatusBadRequest {
			transport.SetBizCode(ctx, transport.BizCode(c.Writer.Status()))
		} else {
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		}

		if al := transport.FromContext(ctx); al != nil {
			al.Status = c.Writer.Status()
			al.ClientIP = c.ClientIP()
		}
		transport.WriteAccessLog(ctx, log)
	}
}

func parseBizCode(body []byte) (int, bool) {
	if len(body) == 0 || body[0] != '{' {
		return 0, false
	}
	var payload struct {
		Code *int `json:"code"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, false
	}
	if payload.Code == nil {
		return 0, false
	}
	return *payload.Code, true
}
