package models

import "time"

type FriendshipState string

const (
	FriendshipPending  FriendshipState = "PENDING"
	FriendshipApproved FriendshipState = "APPROVED"
	FriendshipRejected FriendshipState = "REJECTED"
)

// Friendship is a directed follow relation: follower subscribes to friend.
type Friendship struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	FollowerID uint            `gorm:"not null;index" json:"follower_id"`
	FriendID   uint            `gorm:"not null;index" json:"friend_id"`
	State      FriendshipState `gorm:"type:varchar(20);not null;default:'PENDING'" json:"state"`
	CreatedOn  time.Time       `json:"created_on"`

	Follower *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Friend   *User `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
}
