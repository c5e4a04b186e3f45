package handler

import (
	"context"
	"net/http"

	"github.com/catarena-s/explore-with-me/internal/dto"
	"github.com/catarena-s/explore-with-me/internal/models"
	"github.com/catarena-s/explore-with-me/internal/service"
	"github.com/labstack/echo/v4"
)

type FriendshipHandler struct {
	svc     service.FriendshipService
	friends service.FriendService
}

func NewFriendshipHandler(svc service.FriendshipService, friends service.FriendService) *FriendshipHandler {
	return &FriendshipHandler{svc: svc, friends: friends}
}

func (h *FriendshipHandler) RegisterRoutes(e *echo.Echo) {
	subs := e.Group("/users/:userId/friendship")
	subs.POST("/:friendId", h.Request)
	subs.PATCH("/approve", h.Approve)
	subs.PATCH("/reject", h.Reject)
	subs.DELETE("/:subsId", h.Cancel)
	subs.GET("", h.ListOutgoing)
	subs.GET("/incoming", h.ListIncoming)

	e.GET("/users/:userId/friends", h.Friends)
	e.GET("/users/:userId/followers", h.Followers)
	e.GET("/users/:userId/friends/events/participate", h.ParticipateEvents)
	e.GET("/users/:userId/friends/events", h.FriendEvents)
}

func (h *FriendshipHandler) Request(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	friendID, err := parseUintParam(c, "friendId")
	if err != nil {
		return err
	}

	friendship, err := h.svc.Request(c.Request().Context(), userID, friendID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToFriendshipResponse(friendship))
}

func (h *FriendshipHandler) Approve(c echo.Context) error {
	return h.changeState(c, h.svc.Approve)
}

func (h *FriendshipHandler) Reject(c echo.Context) error {
	return h.changeState(c, h.svc.Reject)
}

func (h *FriendshipHandler) changeState(
	c echo.Context,
	apply func(ctx context.Context, friendID uint, ids []uint) (*service.FriendshipBatch, error),
) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	ids, err := parseUintList(c.QueryParam("ids"))
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}

	batch, err := apply(c.Request().Context(), userID, ids)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.FriendshipBatchResult{
		Updated: dto.ToFriendshipResponses(batch.Updated),
		Skipped: dto.ToFriendshipResponses(batch.Skipped),
	})
}

func (h *FriendshipHandler) Cancel(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	subsID, err := parseUintParam(c, "subsId")
	if err != nil {
		return err
	}

	if err := h.svc.Cancel(c.Request().Context(), userID, subsID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FriendshipHandler) ListOutgoing(c echo.Context) error {
	return h.list(c, h.svc.ListOutgoing)
}

func (h *FriendshipHandler) ListIncoming(c echo.Context) error {
	return h.list(c, h.svc.ListIncoming)
}

func (h *FriendshipHandler) list(
	c echo.Context,
	load func(ctx context.Context, userID uint, filter string) ([]models.Friendship, error),
) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}

	friendships, err := load(c.Request().Context(), userID, c.QueryParam("filter"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToFriendshipResponses(friendships))
}

func (h *FriendshipHandler) Friends(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}

	users, err := h.friends.Friends(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *FriendshipHandler) Followers(c echo.Context) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}

	users, err := h.friends.Followers(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

func (h *FriendshipHandler) ParticipateEvents(c echo.Context) error {
	return h.friendEventList(c, h.friends.ParticipateEvents)
}

func (h *FriendshipHandler) FriendEvents(c echo.Context) error {
	return h.friendEventList(c, h.friends.FriendEvents)
}

func (h *FriendshipHandler) friendEventList(
	c echo.Context,
	load func(ctx context.Context, followerID uint, offset, limit int) ([]models.Event, error),
) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return err
	}
	offset, limit, err := parsePaging(c)
	if err != nil {
		return err
	}

	events, err := load(c.Request().Context(), userID, offset, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponses(events, nil))
}
