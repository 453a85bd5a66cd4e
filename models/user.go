package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Username         string         `json:"username" gorm:"uniqueIndex;not null"`
	Email            string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash     string         `json:"-" gorm:"not null"`
	ControlTimestamp time.Time      `json:"control_timestamp" gorm:"autoUpdateTime"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`
}

// PublicUser is the read shape exposed by the API: no email, no hash.
type PublicUser struct {
	ID               uint      `json:"id"`
	Username         string    `json:"username"`
	ControlTimestamp time.Time `json:"control_timestamp"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:               u.ID,
		Username:         u.Username,
		ControlTimestamp: u.ControlTimestamp,
	}
}
