package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) markProgress(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	courseID, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}
	counter, err := counterParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	p, err := s.progress.Mark(c.Request().Context(), u.ID, courseID, counter)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) courseProgress(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	courseID, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}

	cp, err := s.progress.CourseProgress(c.Request().Context(), u.ID, courseID)
	if err != nil {
		return s.fail(c, err)
	}
	// zero lessons is not a 0/0 ratio
	if cp.Total == 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "course has no lessons yet"})
	}
	return c.JSON(http.StatusOK, map[string]int{
		"completed": cp.Completed,
		"total":     cp.Total,
	})
}
