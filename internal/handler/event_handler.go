package handler

import (
	"net/http"
	"time"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/repository"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc   service.EventService
	stats service.StatsService
}

func NewEventHandler(svc service.EventService, stats service.StatsService) *EventHandler {
	return &EventHandler{svc: svc, stats: stats}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	private := e.Group("/users/:userId/events")
	private.POST("", h.CreateEvent)
	private.GET("", h.ListOwnEvents)
	private.GET("/:eventId", h.GetOwnEvent)
	private.PATCH("/:eventId", h.UpdateByOwner)

	admin := e.Group("/admin/events")
	admin.GET("", h.SearchAdmin)
	admin.PATCH("/:eventId", h.UpdateByAdmin)

	public := e.Group("/events")
	public.GET("", h.SearchPublic)
	public.GET("/:id", h.GetPublic)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}

	var req dto.NewEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Annotation == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and annotation are required")
	}
	if req.ParticipantLimit < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "participant_limit must not be negative")
	}

	event, err := h.svc.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event, 0))
}

func (h *EventHandler) ListOwnEvents(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	offset, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	events, err := h.svc.GetOwnEvents(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events, nil))
}

func (h *EventHandler) GetOwnEvent(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		return err
	}

	event, err := h.svc.GetOwnEvent(c.Request().Context(), userID, eventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, 0))
}

func (h *EventHandler) UpdateByOwner(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateByOwner(c.Request().Context(), userID, eventID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, 0))
}

func (h *EventHandler) UpdateByAdmin(c echo.Context) error {
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateByAdmin(c.Request().Context(), eventID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, 0))
}

func (h *EventHandler) SearchAdmin(c echo.Context) error {
	offset, limit, err := parsePaging(c)
	if err != nil {
		return err
	}
	users, err := parseUintList(c.QueryParam("users"))
	if err != nil {
		return err
	}
	categories, err := parseUintList(c.QueryParam("categories"))
	if err != nil {
		return err
	}
	rangeStart, err := parseTime(c.QueryParam("rangeStart"))
	if err != nil {
		return err
	}
	rangeEnd, err := parseTime(c.QueryParam("rangeEnd"))
	if err != nil {
		return err
	}

	var states []models.EventState
	if raw := c.QueryParam("states"); raw != "" {
		for _, s := range splitCSV(raw) {
			states = append(states, models.EventState(s))
		}
	}

	events, err := h.svc.SearchAdmin(c.Request().Context(), repository.AdminEventFilter{
		Users:      users,
		States:     states,
		Categories: categories,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events, h.stats.EventViews(c.Request().Context(), events)))
}

func (h *EventHandler) SearchPublic(c echo.Context) error {
	offset, limit, err := parsePaging(c)
	if err != nil {
		return err
	}
	categories, err := parseUintList(c.QueryParam("categories"))
	if err != nil {
		return err
	}
	rangeStart, err := parseTime(c.QueryParam("rangeStart"))
	if err != nil {
		return err
	}
	rangeEnd, err := parseTime(c.QueryParam("rangeEnd"))
	if err != nil {
		return err
	}

	var paid *bool
	if raw := c.QueryParam("paid"); raw != "" {
		v := raw == "true"
		paid = &v
	}

	events, err := h.svc.SearchPublic(c.Request().Context(), repository.PublicEventFilter{
		Text:          c.QueryParam("text"),
		Categories:    categories,
		Paid:          paid,
		RangeStart:    rangeStart,
		RangeEnd:      rangeEnd,
		OnlyAvailable: c.QueryParam("onlyAvailable") == "true",
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return httpError(err)
	}

	h.stats.RecordHit(c.Request().RequestURI, c.RealIP())
	return c.JSON(http.StatusOK, dto.ToEventResponses(events, h.stats.EventViews(c.Request().Context(), events)))
}

func (h *EventHandler) GetPublic(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	event, err := h.svc.GetPublished(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	h.stats.RecordHit(c.Request().URL.Path, c.RealIP())
	views := h.stats.EventViews(c.Request().Context(), []models.Event{*event})
	return c.JSON(http.StatusOK, dto.ToEventResponse(event, views[event.ID]))
}

func parseTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid time, expected RFC3339")
	}
	return &t, nil
}
