package httpserver

import (
	"net/http"
	"time"

	"coursetracker/internal/model"
	"github.com/labstack/echo/v4"
)

type materialCreateRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=100"`
	Content    string `json:"content" validate:"required,min=1"`
	DateLesson string `json:"date_lesson" validate:"required,datetime=2006-01-02"`
}

type materialUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=100"`
	Content    *string `json:"content" validate:"omitempty,min=1"`
	DateLesson *string `json:"date_lesson" validate:"omitempty,datetime=2006-01-02"`
}

func (s *Server) createMaterial(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	courseID, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}
	var req materialCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(model.DateOnly, req.DateLesson)
	if err != nil {
		return badRequest(c, "invalid date_lesson")
	}

	m, err := s.materials.Create(c.Request().Context(), u.ID, courseID, req.Title, req.Content, date)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (s *Server) getMaterial(c echo.Context) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}
	counter, err := counterParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	m, err := s.materials.Get(c.Request().Context(), courseID, counter)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) listMaterials(c echo.Context) error {
	ms, err := s.materials.List(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}
	if ms == nil {
		ms = []model.Material{}
	}
	return c.JSON(http.StatusOK, ms)
}

func (s *Server) updateMaterial(c echo.Context) error {
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
	var req materialUpdateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	upd := model.MaterialUpdate{Title: req.Title, Content: req.Content}
	if req.DateLesson != nil {
		date, err := time.Parse(model.DateOnly, *req.DateLesson)
		if err != nil {
			return badRequest(c, "invalid date_lesson")
		}
		upd.DateLesson = &date
	}

	m, err := s.materials.Update(c.Request().Context(), u.ID, courseID, counter, upd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (s *Server) deleteMaterial(c echo.Context) error {
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

	if err := s.materials.Delete(c.Request().Context(), u.ID, courseID, counter); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) courseSchedule(c echo.Context) error {
	courseID, err := courseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid course id")
	}

	entries, err := s.materials.Schedule(c.Request().Context(), courseID)
	if err != nil {
		return s.fail(c, err)
	}
	if len(entries) == 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "course has no lessons yet"})
	}
	return c.JSON(http.StatusOK, entries)
}
