// Package httpserver exposes the course tracking HTTP API.
package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"coursetracker/internal/errs"
	"coursetracker/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth      service.AuthService
	courses   service.CourseService
	materials service.MaterialService
	progress  service.ProgressService
	log       *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, courses service.CourseService, materials service.MaterialService, progress service.ProgressService, log *zap.Logger) *Server {
	return &Server{auth: auth, courses: courses, materials: materials, progress: progress, log: log}
}

// CustomValidator adapts go-playground/validator to echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Routes registers all endpoints on e.
func (s *Server) Routes(e *echo.Echo) {
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(RequestLogger(s.log))
	e.Use(Recover(s.log))

	e.GET("/", s.root)
	e.POST("/api/auth/register", s.register)
	e.POST("/api/auth/login", s.login)

	e.GET("/api/courses", s.listCourses)
	e.GET("/api/courses/:course_id", s.getCourse)
	e.GET("/api/courses/:course_id/schedule", s.courseSchedule)
	e.GET("/api/materials", s.listMaterials)
	e.GET("/api/users/:user_id", s.userCourses)

	authed := RequireAuth(s.auth, s.log)
	e.GET("/api/users/me", s.me, authed)
	e.DELETE("/api/users/:user_id", s.deleteUser, authed)

	e.POST("/api/courses", s.createCourse, authed)
	e.PUT("/api/courses/:course_id", s.updateCourse, authed)
	e.DELETE("/api/courses/:course_id", s.deleteCourse, authed)

	e.POST("/api/courses/:course_id/materials", s.createMaterial, authed)
	e.GET("/api/courses/:course_id/materials/:counter", s.getMaterial, authed)
	e.PUT("/api/courses/:course_id/materials/:counter", s.updateMaterial, authed)
	e.DELETE("/api/courses/:course_id/materials/:counter", s.deleteMaterial, authed)

	e.POST("/api/courses/:course_id/materials/:counter/complete", s.markProgress, authed)
	e.GET("/api/courses/:course_id/progress", s.courseProgress, authed)
}

func (s *Server) root(c echo.Context) error {
	return c.String(http.StatusOK, "course tracking service: schedules, progress, materials")
}

// fail maps a service error to its transport status code. The concrete cause
// stays server-side: domain outcomes are logged at Info, anything unmapped is
// an internal failure logged at Error before the client sees a bare 500.
func (s *Server) fail(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrAlreadyExists), errors.Is(err, errs.ErrCounterConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrRateLimited):
		code = http.StatusTooManyRequests
	default:
		s.log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	s.log.Info("request rejected",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Request().URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	)
	return c.JSON(code, map[string]string{"error": http.StatusText(code)})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func courseIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.FromString(c.Param("course_id"))
}

func counterParam(c echo.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("counter"))
	if err != nil || n < 1 {
		return 0, errors.New("counter must be a positive integer")
	}
	return n, nil
}
