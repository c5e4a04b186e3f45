package models

import "time"

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	AutoSubscribe bool      `gorm:"not null;default:false" json:"auto_subscribe"`
	CreatedAt     time.Time `json:"created_at"`
}
