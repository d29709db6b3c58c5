package services

import (
	"errors"
	"time"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"gorm.io/gorm"
)

type PersonalTaskService struct {
	db *gorm.DB
}

func NewPersonalTaskService(db *gorm.DB) *PersonalTaskService {
	return &PersonalTaskService{db: db}
}

type PersonalTaskListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Overdue  *bool  `form:"overdue"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`    // deadline, priority, status, created_at, updated_at
	SortDir  string `form:"sort_order"` // asc, desc
}

type PersonalTaskListResponse struct {
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Items    []models.PersonalTask `json:"items"`
}

type PersonalTaskCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
}

type PersonalTaskPatchRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
}

func (r *PersonalTaskPatchRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.Deadline == nil &&
		r.Priority == nil && r.Status == nil
}

func (s *PersonalTaskService) List(userID uint, req *PersonalTaskListRequest) (*PersonalTaskListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.PersonalTask{}).Where("user_id = ?", userID)

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
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	query = query.Order(taskOrderClause(req.SortBy, req.SortDir))

	var items []models.PersonalTask
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &PersonalTaskListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *PersonalTaskService) Create(userID uint, req *PersonalTaskCreateRequest) (*models.PersonalTask, error) {
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

	task := models.PersonalTask{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *PersonalTaskService) GetByID(userID, taskID uint) (*models.PersonalTask, error) {
	var task models.PersonalTask
	err := s.db.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Task not found")
		}
		return nil, err
	}
	return &task, nil
}

func (s *PersonalTaskService) Update(userID, taskID uint, req *PersonalTaskPatchRequest) (*models.PersonalTask, error) {
	if req.empty() {
		return nil, apperr.BadRequest("No data to update")
	}

	task, err := s.GetByID(userID, taskID)
	if err != nil {
		return nil, err
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

	if err := s.db.Model(task).Updates(updates).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PersonalTaskService) Delete(userID, taskID uint) error {
	task, err := s.GetByID(userID, taskID)
	if err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

// taskOrderClause builds a safe ORDER BY from whitelisted sort fields.
func taskOrderClause(sortBy, sortDir string) string {
	switch sortBy {
	case "deadline", "status", "priority", "assigned_at", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}
	dir := "DESC"
	if sortDir == "asc" {
		dir = "ASC"
	}
	return sortBy + " " + dir
}
