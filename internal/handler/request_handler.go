package handler

import (
	"net/http"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/labstack/echo/v4"
)

type RequestHandler struct {
	svc service.RequestService
}

func NewRequestHandler(svc service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

func (h *RequestHandler) RegisterRoutes(e *echo.Echo) {
	requests := e.Group("/users/:userId/requests")
	requests.POST("", h.Submit)
	requests.GET("", h.ListOwn)
	requests.PATCH("/:requestId/cancel", h.Cancel)

	e.GET("/users/:userId/events/:eventId/requests", h.ListParticipants)
	e.PATCH("/users/:userId/events/:eventId/requests", h.BulkChangeStatus)
}

func (h *RequestHandler) Submit(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	eventID, err := parseUintQuery(c, "eventId")
	if err != nil {
		return err
	}

	request, err := h.svc.Submit(c.Request().Context(), userID, eventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRequestResponse(request))
}

func (h *RequestHandler) Cancel(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	requestID, err := parseUintParam(c, "requestId")
	if err != nil {
		return err
	}

	request, err := h.svc.Cancel(c.Request().Context(), userID, requestID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRequestResponse(request))
}

func (h *RequestHandler) ListOwn(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}

	requests, err := h.svc.ListForRequester(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

func (h *RequestHandler) ListParticipants(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		return err
	}

	requests, err := h.svc.ListParticipants(c.Request().Context(), userID, eventID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRequestResponses(requests))
}

func (h *RequestHandler) BulkChangeStatus(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	eventID, err := parseUintParam(c, "eventId")
	if err != nil {
		return err
	}

	var req dto.RequestStatusUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.RequestIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request_ids is required")
	}

	result, err := h.svc.BulkChangeStatus(c.Request().Context(), userID, eventID, &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.RequestStatusUpdateResult{
		ConfirmedRequests: dto.ToRequestResponses(result.Confirmed),
		RejectedRequests:  dto.ToRequestResponses(result.Rejected),
	})
}
