package models

import (
	"time"

	"gorm.io/gorm"
)

type PlayerAnswer struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	GameSessionID uint           `json:"game_session_id"`
	PlayerName    string         `json:"player_name" gorm:"not null"`
	QuestionID    uint           `json:"question_id" gorm:"not null"`
	AnswerID      uint           `json:"answer_id" gorm:"not null"`
	IsCorrect     bool           `json:"is_correct" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question QuizQuestion `json:"question,omitempty"`
	Answer   Answer       `json:"answer,omitempty"`
}
