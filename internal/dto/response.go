package dto

import (
	"time"

	"github.com/catarena-s/explore-with-me/internal/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AutoSubscribe bool   `json:"auto_subscribe"`
}

type UserShortResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type EventResponse struct {
	ID                uint               `json:"id"`
	Title             string             `json:"title"`
	Annotation        string             `json:"annotation"`
	Description       string             `json:"description,omitempty"`
	Category          *CategoryResponse  `json:"category,omitempty"`
	Initiator         *UserShortResponse `json:"initiator,omitempty"`
	Location          *LocationDTO       `json:"location,omitempty"`
	EventDate         time.Time          `json:"event_date"`
	CreatedOn         time.Time          `json:"created_on"`
	PublishedOn       *time.Time         `json:"published_on,omitempty"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int                `json:"participant_limit"`
	ConfirmedRequests int                `json:"confirmed_requests"`
	RequestModeration bool               `json:"request_moderation"`
	State             models.EventState  `json:"state"`
	Views             int64              `json:"views"`
}

type ParticipationRequestResponse struct {
	ID        uint                 `json:"id"`
	Requester uint                 `json:"requester"`
	Event     uint                 `json:"event"`
	Created   time.Time            `json:"created"`
	Status    models.RequestStatus `json:"status"`
}

type RequestStatusUpdateResult struct {
	ConfirmedRequests []ParticipationRequestResponse `json:"confirmed_requests"`
	RejectedRequests  []ParticipationRequestResponse `json:"rejected_requests"`
}

type FriendshipResponse struct {
	ID        uint                   `json:"id"`
	Follower  *UserShortResponse     `json:"follower,omitempty"`
	Friend    *UserShortResponse     `json:"friend,omitempty"`
	State     models.FriendshipState `json:"state"`
	CreatedOn time.Time              `json:"created_on"`
}

// FriendshipBatchResult reports a batch approve/reject: rows that changed
// state and rows skipped because they were not in a legal source state.
type FriendshipBatchResult struct {
	Updated []FriendshipResponse `json:"updated"`
	Skipped []FriendshipResponse `json:"skipped"`
}

type ViewStatsResponse struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, AutoSubscribe: u.AutoSubscribe}
}

func ToUserResponses(users []models.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = ToUserResponse(&users[i])
	}
	return resp
}

func toUserShort(u *models.User) *UserShortResponse {
	if u == nil {
		return nil
	}
	return &UserShortResponse{ID: u.ID, Name: u.Name}
}

func ToEventResponse(e *models.Event, views int64) EventResponse {
	resp := EventResponse{
		ID:                e.ID,
		Title:             e.Title,
		Annotation:        e.Annotation,
		Description:       e.Description,
		Initiator:         toUserShort(e.Initiator),
		EventDate:         e.EventDate,
		CreatedOn:         e.CreatedOn,
		PublishedOn:       e.PublishedOn,
		Paid:              e.Paid,
		ParticipantLimit:  e.ParticipantLimit,
		ConfirmedRequests: e.ConfirmedRequests,
		RequestModeration: e.RequestModeration,
		State:             e.State,
		Views:             views,
	}
	if e.Category != nil {
		c := ToCategoryResponse(e.Category)
		resp.Category = &c
	}
	if e.Location != nil {
		resp.Location = &LocationDTO{Lat: e.Location.Lat, Lon: e.Location.Lon}
	}
	return resp
}

func ToEventResponses(events []models.Event, views map[uint]int64) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = ToEventResponse(&events[i], views[events[i].ID])
	}
	return resp
}

func ToRequestResponse(r *models.Request) ParticipationRequestResponse {
	return ParticipationRequestResponse{
		ID:        r.ID,
		Requester: r.RequesterID,
		Event:     r.EventID,
		Created:   r.Created,
		Status:    r.Status,
	}
}

func ToRequestResponses(requests []models.Request) []ParticipationRequestResponse {
	resp := make([]ParticipationRequestResponse, len(requests))
	for i := range requests {
		resp[i] = ToRequestResponse(&requests[i])
	}
	return resp
}

func ToFriendshipResponse(f *models.Friendship) FriendshipResponse {
	return FriendshipResponse{
		ID:        f.ID,
		Follower:  toUserShort(f.Follower),
		Friend:    toUserShort(f.Friend),
		State:     f.State,
		CreatedOn: f.CreatedOn,
	}
}

func ToFriendshipResponses(friendships []models.Friendship) []FriendshipResponse {
	resp := make([]FriendshipResponse, len(friendships))
	for i := range friendships {
		resp[i] = ToFriendshipResponse(&friendships[i])
	}
	return resp
}
