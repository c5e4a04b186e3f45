package dto

import "time"

type LocationDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewEventRequest struct {
	Title             string      `json:"title"`
	Annotation        string      `json:"annotation"`
	Description       string      `json:"description"`
	Category          uint        `json:"category"`
	EventDate         time.Time   `json:"event_date"`
	Location          LocationDTO `json:"location"`
	Paid              bool        `json:"paid"`
	ParticipantLimit  int         `json:"participant_limit"`
	RequestModeration *bool       `json:"request_moderation,omitempty"`
}

// UpdateEventRequest carries an organizer or admin patch. Nil fields are
// left untouched.
type UpdateEventRequest struct {
	Title             *string      `json:"title,omitempty"`
	Annotation        *string      `json:"annotation,omitempty"`
	Description       *string      `json:"description,omitempty"`
	Category          *uint        `json:"category,omitempty"`
	EventDate         *time.Time   `json:"event_date,omitempty"`
	Location          *LocationDTO `json:"location,omitempty"`
	Paid              *bool        `json:"paid,omitempty"`
	ParticipantLimit  *int         `json:"participant_limit,omitempty"`
	RequestModeration *bool        `json:"request_moderation,omitempty"`
	StateAction       *string      `json:"state_action,omitempty"`
}

type RequestStatusUpdate struct {
	RequestIDs []uint `json:"request_ids"`
	Status     string `json:"status"`
}

type NewUserRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	AutoSubscribe bool   `json:"auto_subscribe"`
}

type NewCategoryRequest struct {
	Name string `json:"name"`
}

// EndpointHitMessage is the stats exchange payload for one endpoint view.
type EndpointHitMessage struct {
	App       string    `json:"app"`
	URI       string    `json:"uri"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
}
