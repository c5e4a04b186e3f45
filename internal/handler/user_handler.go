package handler

import (
	"net/http"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	admin := e.Group("/admin/users")
	admin.POST("", h.Create)
	admin.GET("", h.List)
	admin.DELETE("/:id", h.Delete)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req dto.NewUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	user, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *UserHandler) List(c echo.Context) error {
	offset, limit, err := parsePaging(c)
	if err != nil {
		return err
	}
	ids, err := parseUintList(c.QueryParam("ids"))
	if err != nil {
		return err
	}

	users, err := h.svc.List(c.Request().Context(), ids, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
