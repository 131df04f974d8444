package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const maxLogBodySize = 1 << 12 // 4 KB

// RequestLogGin logs every request. Bodies of credential-bearing routes and
// webhooks are never logged.
func RequestLogGin(
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
	duration *prometheus.HistogramVec,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request != nil && c.Request.Body != nil {
			switch {
			case sensitivePath(c.Request.URL.Path):
				body = "<omitted>"
			case strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data"):
				body = "<multipart/form-data omitted>"
			default:
				// Only the logged prefix is buffered; the rest of the body is
				// streamed to the handler untouched.
				var buf bytes.Buffer
				_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
				body = buf.String()
				c.Request.Body = readCloser{
					Reader: io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body),
					Closer: c.Request.Body,
				}
			}
		}

		c.Next()

		elapsed := time.Since(start)
		if mCounter != nil {
			mCounter.WithLabelValues("app_requests_total").Inc()
		}
		if duration != nil {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			duration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Observe(elapsed.Seconds())
		}

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", elapsed),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		)
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}

func sensitivePath(p string) bool {
	return strings.Contains(p, "/auth/") || strings.HasSuffix(p, "/webhook")
}
