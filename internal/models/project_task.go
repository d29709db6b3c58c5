package models

import (
	"time"

	"gorm.io/gorm"
)

// Task kinds. A fixed task carries a mandatory assignee from creation on; an
// open task starts unclaimed and is claimed through the assign action.
const (
	TaskKindFixed = "fixed"
	TaskKindOpen  = "open"
)

// ProjectTask is a task inside a project.
//
// Invariants, enforced by the task service:
//   - kind=fixed implies AssigneeID and AssignedAt are always set
//   - kind=open has AssignedAt set exactly when AssigneeID is set
type ProjectTask struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index:ix_project_tasks_project_kind;index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Kind        string         `gorm:"size:20;default:fixed;index:ix_project_tasks_project_kind" json:"kind"`
	AssigneeID  *uint          `gorm:"index" json:"assignee_id"`
	Assignee    *User          `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	CreatedByID uint           `gorm:"index" json:"created_by_id"`
	Creator     *User          `gorm:"foreignKey:CreatedByID" json:"creator,omitempty"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"size:1000" json:"description"`
	Deadline    *time.Time     `gorm:"index" json:"deadline"`
	Priority    string         `gorm:"size:20;default:medium;index" json:"priority"`
	Status      string         `gorm:"size:20;default:todo;index" json:"status"`
	AssignedAt  *time.Time     `json:"assigned_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectTask) TableName() string { return "project_tasks" }

// ValidTaskKind reports whether k is a known task kind.
func ValidTaskKind(k string) bool {
	return k == TaskKindFixed || k == TaskKindOpen
}
