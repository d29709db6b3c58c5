package models

import (
	"time"

	"gorm.io/gorm"
)

// PersonalTask is a private task owned by a single user. No cross-user policy
// applies; only the owner can see or touch it.
type PersonalTask struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"size:1000" json:"description"`
	Deadline    *time.Time     `gorm:"index" json:"deadline"`
	Priority    string         `gorm:"size:20;default:medium" json:"priority"`
	Status      string         `gorm:"size:20;default:todo" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (PersonalTask) TableName() string { return "personal_tasks" }
