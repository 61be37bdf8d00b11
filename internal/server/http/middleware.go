package httpserver

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"coursetracker/internal/model"
	"coursetracker/internal/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const userContextKey = "ct.user"

// RequireAuth resolves the bearer token into a live user record and stashes it
// in the request context. Missing header, malformed header, bad token and
// vanished user all produce the same 401 body; the concrete cause goes only to
// the server log.
func RequireAuth(auth service.AuthService, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			u, err := auth.Resolve(c.Request().Context(), raw)
			if err != nil {
				log.Info("auth failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// userFromContext fetches the authenticated user stored by RequireAuth.
func userFromContext(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userContextKey).(*model.User)
	return u, ok
}

// RequestLogger returns a middleware for structured request logging.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// metadata only, no payloads
			log.Info("http",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", c.RealIP()),
			)
			return err
		}
	}
}

// Recover returns a middleware that recovers from handler panics.
func Recover(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic",
						zap.Any("reason", r),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", c.Request().URL.Path),
					)
					err = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
				}
			}()
			return next(c)
		}
	}
}
