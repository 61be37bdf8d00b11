package httpserver

import (
	"net/http"

	"coursetracker/internal/model"
	"github.com/labstack/echo/v4"
)

type courseCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=300"`
}

type courseUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,min=1,max=300"`
}

func (s *Server) createCourse(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	var req courseCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := s.courses.Create(c.Request().Context(), u, req.Title, req.Description)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, course)
}

func (s *Server) listCourses(c echo.Context) error {
	cs, err := s.courses.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	if cs == nil {
		cs = []model.Course{}
	}
	return c.JSON(http.StatusOK, cs)
}

func (s *Server) getCourse(c echo.Context) error {
	id, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}

	course, materials, err := s.courses.Get(c.Request().Context(), id)
	if err != nil {
		return s.fail(c, err)
	}
	if materials == nil {
		materials = []model.Material{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"course":    course,
		"materials": materials,
	})
}

func (s *Server) updateCourse(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}
	var req courseUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := s.courses.Update(c.Request().Context(), u.ID, id, model.CourseUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, course)
}

func (s *Server) deleteCourse(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	id, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}

	if err := s.courses.Delete(c.Request().Context(), u.ID, id); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
