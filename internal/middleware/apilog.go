package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/fms-api/internal/models"
	"github.com/noah-isme/fms-api/internal/service"
)

const (
	maxLoggedBodyBytes     = 4 << 10
	maxResponseSnippet     = 1 << 10
	authorizationRedaction = "[redacted]"
)

type snippetWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *snippetWriter) Write(data []byte) (int, error) {
	if w.buf.Len() < maxResponseSnippet {
		remain := maxResponseSnippet - w.buf.Len()
		if remain > len(data) {
			remain = len(data)
		}
		w.buf.Write(data[:remain])
	}
	return w.ResponseWriter.Write(data)
}

// APILog traces every request through the async log queue. The submit is
// non-blocking; a full buffer drops the trace rather than delaying the
// response. Login bodies are not captured.
func APILog(logSvc *service.APILogService, metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logSvc == nil {
			c.Next()
			return
		}

		start := time.Now()

		var requestBody string
		// Matched on the route suffix so the redaction holds under any
		// configured API prefix.
		if strings.HasSuffix(c.FullPath(), "/auth/login") {
			requestBody = authorizationRedaction
		} else if c.Request.Body != nil {
			data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoggedBodyBytes))
			if err == nil {
				requestBody = string(data)
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), c.Request.Body))
			}
		}

		writer := &snippetWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		var userID *string
		if claimsValue, ok := c.Get(ContextUserKey); ok {
			claims := claimsValue.(*models.JWTClaims)
			userID = &claims.UserID
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		accepted := logSvc.Record(models.APILog{
			UserID:          userID,
			Method:          c.Request.Method,
			Path:            path,
			Status:          c.Writer.Status(),
			RequestBody:     requestBody,
			ResponseSnippet: writer.buf.String(),
			LatencyMs:       time.Since(start).Milliseconds(),
		})
		if !accepted {
			metrics.RecordQueueDrop()
		}
	}
}
