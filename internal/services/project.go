package services

import (
	"errors"
	"time"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`    // deadline, status, created_at, updated_at
	SortDir  string `form:"sort_order"` // asc, desc
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type ProjectCreateRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
}

type ProjectPatchRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
}

func (r *ProjectPatchRequest) empty() bool {
	return r.Title == nil && r.Description == nil && r.Deadline == nil && r.Status == nil
}

// Create inserts the project and its owner membership in one transaction, so
// a project can never exist without exactly one owner.
func (s *ProjectService) Create(userID uint, req *ProjectCreateRequest) (*models.Project, error) {
	if req.Status == "" {
		req.Status = models.ProjectPlanning
	}
	if !models.ValidProjectStatus(req.Status) {
		return nil, apperr.BadRequest("Invalid project status")
	}

	project := models.Project{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      req.Status,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		owner := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      permissions.RoleOwner,
			JoinedAt:  time.Now(),
		}
		return tx.Create(&owner).Error
	}); err != nil {
		return nil, err
	}

	return &project, nil
}

// List returns the projects the user is a member of.
func (s *ProjectService) List(userID uint, req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{}).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID)

	if req.Status != "" {
		query = query.Where("projects.status = ?", req.Status)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("projects.title LIKE ? OR projects.description LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	sortBy := req.SortBy
	switch sortBy {
	case "deadline", "status", "created_at", "updated_at":
	default:
		sortBy = "created_at"
	}
	dir := "DESC"
	if req.SortDir == "asc" {
		dir = "ASC"
	}

	var items []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.Order("projects." + sortBy + " " + dir).
		Offset(offset).Limit(req.PageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

func (s *ProjectService) GetByID(projectID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Creator").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Update(projectID uint, req *ProjectPatchRequest) (*models.Project, error) {
	if req.empty() {
		return nil, apperr.BadRequest("No data to update")
	}

	project, err := s.GetByID(projectID)
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
	if req.Status != nil {
		if !models.ValidProjectStatus(*req.Status) {
			return nil, apperr.BadRequest("Invalid project status")
		}
		updates["status"] = *req.Status
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project with its memberships and tasks.
func (s *ProjectService) Delete(projectID uint) error {
	project, err := s.GetByID(projectID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
}
