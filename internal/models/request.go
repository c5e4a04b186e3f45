package models

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestConfirmed RequestStatus = "CONFIRMED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestCanceled  RequestStatus = "CANCELED"
)

// Request is a participation request for an event. The unique index holds
// one row per (event, requester) pair regardless of status, so a canceled
// request still blocks resubmission. Private requests are hidden from the
// follower feed of shared participating events.
type Request struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	RequesterID uint          `gorm:"not null;uniqueIndex:idx_requests_event_requester" json:"requester_id"`
	EventID     uint          `gorm:"not null;uniqueIndex:idx_requests_event_requester" json:"event_id"`
	Created     time.Time     `json:"created"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Private     bool          `gorm:"not null;default:false" json:"private"`

	Requester *User  `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Event     *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
