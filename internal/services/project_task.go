package services

import (
	"errors"
	"time"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"gorm.io/gorm"
)

// ProjectTaskService drives project tasks through their assignment states.
// A fixed task carries an assignee from creation to deletion; an open task
// alternates between unclaimed and claimed through assign/unassign.
type ProjectTaskService struct {
	db *gorm.DB
}

func NewProjectTaskService(db *gorm.DB) *ProjectTaskService {
	return &ProjectTaskService{db: db}
}

type ProjectTaskListRequest struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	Kind        string `form:"kind"`
	AssigneeID  *uint  `form:"assignee_id"`
	CreatedByID *uint  `form:"created_by_id"`
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	Overdue     *bool  `form:"overdue"`
	Unassigned  *bool  `form:"unassigned"`
	Search      string `form:"search"`
	SortBy      string `form:"sort_by"`    // deadline, priority, status, assigned_at, created_at, updated_at
	SortDir     string `form:"sort_order"` // asc, desc
}

type ProjectTaskListResponse struct {
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Items    []models.ProjectTask `json:"items"`
}

type ProjectTaskCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Kind        string     `json:"kind"`
	AssigneeID  *uint      `json:"assignee_id"`
}

type ProjectTaskPatchRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	AssigneeID  *uint      `json:"assignee_id"`
}

func (r *ProjectTaskPatchRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.Deadline == nil &&
		r.Priority == nil && r.Status == nil && r.AssigneeID == nil
}

// statusOnly reports whether the patch touches nothing but the status field.
func (r *ProjectTaskPatchRequest) statusOnly() bool {
	return r.Status != nil &&
		r.Title == nil && r.Description == nil && r.Deadline == nil &&
		r.Priority == nil && r.AssigneeID == nil
}

func (s *ProjectTaskService) List(projectID uint, req *ProjectTaskListRequest) (*ProjectTaskListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.ProjectTask{}).Where("project_id = ?", projectID)

	if req.Kind != "" {
		query = query.Where("kind = ?", req.Kind)
	}
	if req.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *req.AssigneeID)
	}
	if req.CreatedByID != nil {
		query = query.Where("created_by_id = ?", *req.CreatedByID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.Overdue != nil {
		if *req.Overdue {
			query = query.Where("deadline IS NOT NULL AND deadline < ? AND status NOT IN ?",
				time.Now(), []string{models.TaskDone, models.TaskCancelled})
		} else {
			query = query.Where("deadline IS NULL OR deadline >= ?", time.Now())
		}
	}
	if req.Unassigned != nil {
		if *req.Unassigned {
			query = query.Where("assignee_id IS NULL")
		} else {
			query = query.Where("assignee_id IS NOT NULL")
		}
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	query = query.Order(taskOrderClause(req.SortBy, req.SortDir))

	var items []models.ProjectTask
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Assignee").Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &ProjectTaskListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *ProjectTaskService) GetByID(projectID, taskID uint) (*models.ProjectTask, error) {
	var task models.ProjectTask
	err := s.db.Preload("Assignee").
		Where("id = ? AND project_id = ?", taskID, projectID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, err
	}
	return &task, nil
}

// Create adds a task to the project. A fixed task must name a project member
// as assignee and gets its assignment stamped immediately; an open task must
// start without one.
func (s *ProjectTaskService) Create(projectID, creatorID uint, req *ProjectTaskCreateRequest) (*models.ProjectTask, error) {
	if req.Kind == "" {
		req.Kind = models.TaskKindFixed
	}
	if !models.ValidTaskKind(req.Kind) {
		return nil, apperr.BadRequest("Invalid task kind")
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if req.Status == "" {
		req.Status = models.TaskTodo
	}
	if !models.ValidTaskPriority(req.Priority) {
		return nil, apperr.BadRequest("Invalid task priority")
	}
	if !models.ValidTaskStatus(req.Status) {
		return nil, apperr.BadRequest("Invalid task status")
	}

	task := models.ProjectTask{
		ProjectID:   projectID,
		Kind:        req.Kind,
		CreatedByID: creatorID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Status:      req.Status,
	}

	switch req.Kind {
	case models.TaskKindFixed:
		if req.AssigneeID == nil {
			return nil, apperr.BadRequest("Assignee is required for fixed tasks")
		}
		if err := s.requireMember(projectID, *req.AssigneeID); err != nil {
			return nil, err
		}
		now := time.Now()
		task.AssigneeID = req.AssigneeID
		task.AssignedAt = &now
	case models.TaskKindOpen:
		if req.AssigneeID != nil {
			return nil, apperr.BadRequest("You cannot add assignee to open task.")
		}
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update patches a task. Which permission the actor needs is decided before
// any field validation: a patch touching only status on the actor's own task
// needs update_own_task_status, anything else needs update_tasks.
func (s *ProjectTaskService) Update(projectID, taskID uint, actor *models.ProjectMember, req *ProjectTaskPatchRequest) (*models.ProjectTask, error) {
	if req.empty() {
		return nil, apperr.BadRequest("No data to update.")
	}

	task, err := s.GetByID(projectID, taskID)
	if err != nil {
		return nil, err
	}

	ownTask := task.AssigneeID != nil && *task.AssigneeID == actor.UserID
	if req.statusOnly() && ownTask {
		if err := permissions.RequirePermission(actor.Role, permissions.UpdateOwnTaskStatus); err != nil {
			return nil, err
		}
	} else {
		if err := permissions.RequirePermission(actor.Role, permissions.UpdateTasks); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
	}
	if req.Priority != nil {
		if !models.ValidTaskPriority(*req.Priority) {
			return nil, apperr.BadRequest("Invalid task priority")
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return nil, apperr.BadRequest("Invalid task status")
		}
		updates["status"] = *req.Status
	}
	if req.AssigneeID != nil {
		if task.Kind == models.TaskKindOpen {
			return nil, apperr.BadRequest("You cannot add assignee to open task.")
		}
		if err := s.requireMember(projectID, *req.AssigneeID); err != nil {
			return nil, err
		}
		updates["assignee_id"] = *req.AssigneeID
		updates["assigned_at"] = time.Now()
	}

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *ProjectTaskService) Delete(projectID, taskID uint) error {
	task, err := s.GetByID(projectID, taskID)
	if err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

// Assign claims an open task for the actor. Claiming is always
// self-assignment; there is no claiming on someone else's behalf.
func (s *ProjectTaskService) Assign(projectID, taskID uint, actor *models.ProjectMember) (*models.ProjectTask, error) {
	task, err := s.GetByID(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID != nil {
		return nil, apperr.BadRequest("Task is already assigned.")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"assignee_id": actor.UserID,
		"assigned_at": now,
	}
	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	task.AssigneeID = &actor.UserID
	task.AssignedAt = &now
	return task, nil
}

// Unassign releases an open task's claim. Anyone may drop their own claim;
// dropping someone else's requires the update_tasks permission.
func (s *ProjectTaskService) Unassign(projectID, taskID uint, actor *models.ProjectMember) (*models.ProjectTask, error) {
	task, err := s.GetByID(projectID, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID == nil {
		return nil, apperr.BadRequest("Task is not assigned.")
	}

	if *task.AssigneeID != actor.UserID {
		if !permissions.HasPermission(actor.Role, permissions.UpdateTasks) {
			return nil, apperr.Forbidden("You can unassign only your own tasks.")
		}
	}

	updates := map[string]interface{}{
		"assignee_id": nil,
		"assigned_at": nil,
	}
	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	task.AssigneeID = nil
	task.AssignedAt = nil
	task.Assignee = nil
	return task, nil
}

// requireMember checks that userID belongs to the project.
func (s *ProjectTaskService) requireMember(projectID, userID uint) error {
	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)
	if count == 0 {
		return apperr.NotFound("User not found.")
	}
	return nil
}
