package handler

import (
	"net/http"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/stats", h.GetStats)
}

func (h *StatsHandler) GetStats(c echo.Context) error {
	start, err := parseTime(c.QueryParam("start"))
	if err != nil {
		return err
	}
	end, err := parseTime(c.QueryParam("end"))
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return echo.NewHTTPError(http.StatusBadRequest, "'start' must be before 'end'")
	}
	uris := splitCSV(c.QueryParam("uris"))
	unique := c.QueryParam("unique") == "true"

	stats, err := h.svc.ViewCounts(c.Request().Context(), start, end, uris, unique)
	if err != nil {
		return httpError(err)
	}
	out := make([]dto.ViewStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.ViewStatsResponse{App: s.App, URI: s.URI, Hits: s.Hits})
	}
	return c.JSON(http.StatusOK, out)
}
