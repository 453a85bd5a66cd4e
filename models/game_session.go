package models

import (
	"time"

	"gorm.io/gorm"
)

type GameSession struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id"`
	CategoryID uint           `json:"category_id"`
	Mode       string         `json:"mode" gorm:"not null;default:'offline'"` // offline, multiplayer
	StartedAt  *time.Time     `json:"started_at"`
	EndedAt    *time.Time     `json:"ended_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Scores  []PlayerScore  `json:"scores,omitempty" gorm:"foreignKey:GameSessionID"`
	Answers []PlayerAnswer `json:"answers,omitempty" gorm:"foreignKey:GameSessionID"`
}
