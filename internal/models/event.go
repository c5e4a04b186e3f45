package models

import "time"

type EventState string

const (
	EventPending   EventState = "PENDING"
	EventPublished EventState = "PUBLISHED"
	EventCanceled  EventState = "CANCELED"
)

// StateAction is a lifecycle transition requested by an organizer or an
// admin rather than a state itself.
type StateAction string

const (
	ActionSendToReview StateAction = "SEND_TO_REVIEW"
	ActionCancelReview StateAction = "CANCEL_REVIEW"
	ActionPublishEvent StateAction = "PUBLISH_EVENT"
	ActionRejectEvent  StateAction = "REJECT_EVENT"
)

type Event struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"not null" json:"title"`
	Annotation        string     `gorm:"not null" json:"annotation"`
	Description       string     `json:"description"`
	CategoryID        uint       `gorm:"not null;index" json:"category_id"`
	InitiatorID       uint       `gorm:"not null;index" json:"initiator_id"`
	LocationID        uint       `gorm:"not null" json:"location_id"`
	EventDate         time.Time  `gorm:"not null" json:"event_date"`
	CreatedOn         time.Time  `json:"created_on"`
	PublishedOn       *time.Time `json:"published_on,omitempty"`
	Paid              bool       `gorm:"not null;default:false" json:"paid"`
	ParticipantLimit  int        `gorm:"not null;default:0" json:"participant_limit"`
	ConfirmedRequests int        `gorm:"not null;default:0" json:"confirmed_requests"`
	RequestModeration bool       `gorm:"not null;default:true" json:"request_moderation"`
	State             EventState `gorm:"type:varchar(20);not null;default:'PENDING'" json:"state"`

	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Initiator *User     `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	Location  *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
