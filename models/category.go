package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Descriptor string         `json:"descriptor" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Questions []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:CategoryID"`
}
