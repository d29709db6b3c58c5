package models

import (
	"time"

	"github.com/taskcamp/taskcamp/internal/permissions"
)

// ProjectMember binds a user to a project with a role. Exactly one member per
// project holds the owner role, created together with the project itself.
//
// Memberships are hard-deleted: the unique (project_id, user_id) index must
// keep holding after a user is removed and later re-added.
type ProjectMember struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	ProjectID uint             `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint             `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      permissions.Role `gorm:"size:50;default:member;index" json:"role"`
	JoinedAt  time.Time        `json:"joined_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
