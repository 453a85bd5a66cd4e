package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizQuestion struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CategoryID uint           `json:"category_id" gorm:"not null"`
	Text       string         `json:"text" gorm:"not null"`
	Difficulty int            `json:"difficulty" gorm:"not null;default:1"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Category Category `json:"category,omitempty"`
	Answers  []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}
