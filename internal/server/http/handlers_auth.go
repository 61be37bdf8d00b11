package httpserver

import (
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	u, err := s.auth.Register(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	toks, u, err := s.auth.LoginWithIP(c.Request().Context(), req.Name, req.Password, c.RealIP())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: toks.AccessToken,
		TokenType:   "bearer",
		ID:          u.ID,
		Name:        u.Name,
	})
}

func (s *Server) me(c echo.Context) error {
	u, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c echo.Context) error {
	actor, ok := userFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}
	targetID, err := uuid.FromString(c.Param("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := s.auth.DeleteAccount(c.Request().Context(), actor.ID, targetID); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) userCourses(c echo.Context) error {
	userID, err := uuid.FromString(c.Param("user_id"))
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	u, cs, err := s.courses.UserCourses(c.Request().Context(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":      u.ID,
		"name":    u.Name,
		"courses": cs,
	})
}
