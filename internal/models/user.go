package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that owns personal tasks and collaborates in
// projects through memberships.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email     string         `gorm:"size:255" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	LastLogin *time.Time     `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
