package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// RequestLogWriter defines how request log records are persisted.
type RequestLogWriter interface {
	WriteRequestLog(method, path, query string, status int, durationMS int64, ip, userAgent string) error
}

// RequestLog records every API request in the warehouse for usage analysis.
func RequestLog(writer RequestLogWriter) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Capture request data BEFORE handler execution (Fiber reuses context objects)
		method := c.Method()
		path := c.Path()
		query := ""
		if url := c.OriginalURL(); strings.Contains(url, "?") {
			query = url[strings.Index(url, "?")+1:]
		}
		ip := c.IP()
		userAgent := c.Get("User-Agent")

		err := c.Next()

		status := c.Response().StatusCode()
		durationMS := time.Since(start).Milliseconds()

		// Write asynchronously; all values are captured, safe to use in a goroutine.
		go func() {
			if writeErr := writer.WriteRequestLog(method, path, query, status, durationMS, ip, userAgent); writeErr != nil {
				slog.Error("failed to write request log", "error", writeErr)
			}
		}()

		return err
	}
}
