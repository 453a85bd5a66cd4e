package models

import (
	"time"

	"gorm.io/gorm"
)

type PlayerScore struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	GameSessionID uint           `json:"game_session_id"`
	PlayerName    string         `json:"player_name" gorm:"not null"`
	Score         int            `json:"score" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}
