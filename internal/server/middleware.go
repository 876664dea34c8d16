package server

import (
	"time"

	"cosmossdk.io/log"
	"github.com/labstack/echo/v4"
)

func LoggingMiddleware(logger log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			logger.Debug("Received request", "method", req.Method, "path", req.URL.Path)

			err := next(c)
			if err != nil {
				// let echo render the error so the status below is the real one
				c.Error(err)
			}

			logger.Info("Request served",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start),
			)
			return nil
		}
	}
}
