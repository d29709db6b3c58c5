package models

import (
	"time"

	"gorm.io/gorm"
)

// Project status values.
const (
	ProjectPlanning  = "planning"
	ProjectOnHold    = "on_hold"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"
)

// Project is a shared workspace. The creator receives the owner membership in
// the same transaction that inserts the project row.
type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatorID   uint           `gorm:"index;not null" json:"creator_id"`
	Creator     *User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"size:1000" json:"description"`
	Deadline    *time.Time     `json:"deadline"`
	Status      string         `gorm:"size:50;default:planning;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectPlanning, ProjectOnHold, ProjectActive, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}
