package models

import (
	"time"

	"gorm.io/gorm"
)

// Page is a free-form titled content container owned by a user.
type Page struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	UserID  uint64 `gorm:"not null;index" json:"user_id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
