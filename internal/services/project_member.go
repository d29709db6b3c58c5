package services

import (
	"errors"
	"time"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"gorm.io/gorm"
)

// ProjectMemberService orchestrates the membership lifecycle. Every mutation
// runs the permission checks against state read in the same transaction, so a
// role change cannot slip between check and write.
type ProjectMemberService struct {
	db *gorm.DB
}

func NewProjectMemberService(db *gorm.DB) *ProjectMemberService {
	return &ProjectMemberService{db: db}
}

type MemberListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Role     string `form:"role"`
	SortBy   string `form:"sort_by"`    // role, joined_at
	SortDir  string `form:"sort_order"` // asc, desc
}

type MemberListResponse struct {
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Items    []models.ProjectMember `json:"items"`
}

type MemberAddRequest struct {
	UserID uint             `json:"user_id" binding:"required"`
	Role   permissions.Role `json:"role" binding:"required"`
}

type MemberPatchRequest struct {
	Role *permissions.Role `json:"role"`
}

func (r *MemberPatchRequest) empty() bool {
	return r.Role == nil
}

// GetMembership loads the membership of userID in projectID.
func (s *ProjectMemberService) GetMembership(projectID, userID uint) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Member not found")
		}
		return nil, err
	}
	return &member, nil
}

// List returns project members ordered by role rank (owner first) unless
// another sort is requested.
func (s *ProjectMemberService) List(projectID uint, req *MemberListRequest) (*MemberListResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID)
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	query.Count(&total)

	dir := "ASC"
	if req.SortDir == "desc" {
		dir = "DESC"
	}
	switch req.SortBy {
	case "joined_at":
		query = query.Order("joined_at " + dir)
	default:
		// Rank is display ordering only; the CASE mirrors Role.Rank().
		rankDir := "DESC"
		if req.SortDir == "desc" {
			rankDir = "ASC"
		}
		query = query.Order("CASE role WHEN 'owner' THEN 3 WHEN 'admin' THEN 2 WHEN 'member' THEN 1 ELSE 0 END " + rankDir).
			Order("joined_at ASC")
	}

	var items []models.ProjectMember
	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("User").Offset(offset).Limit(req.PageSize).Find(&items).Error; err != nil {
		return nil, err
	}

	return &MemberListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// Add brings a user into the project. Check order is a contract: role
// assignment is validated before any lookup, so a caller who may not grant
// the requested role learns nothing about users or memberships.
func (s *ProjectMemberService) Add(projectID uint, actor *models.ProjectMember, req *MemberAddRequest) (*models.ProjectMember, error) {
	if err := permissions.ValidateRoleAssignment(actor.Role, req.Role); err != nil {
		return nil, err
	}

	var member *models.ProjectMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var userCount int64
		tx.Model(&models.User{}).Where("id = ?", req.UserID).Count(&userCount)
		if userCount == 0 {
			return apperr.NotFound("User not found.")
		}

		var memberCount int64
		tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", projectID, req.UserID).
			Count(&memberCount)
		if memberCount > 0 {
			return apperr.Conflict("User is already a project member")
		}

		member = &models.ProjectMember{
			ProjectID: projectID,
			UserID:    req.UserID,
			Role:      req.Role,
			JoinedAt:  time.Now(),
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// Update changes a member's role. Check order is a contract: existence, then
// operation permission, then assignment permission — a caller without
// operation rights never learns whether the desired role would have been
// acceptable.
func (s *ProjectMemberService) Update(projectID, userID uint, actor *models.ProjectMember, req *MemberPatchRequest) (*models.ProjectMember, error) {
	if req.empty() {
		return nil, apperr.BadRequest("No data to update")
	}

	var member *models.ProjectMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var target models.ProjectMember
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Member not found")
			}
			return err
		}

		if err := permissions.ValidateMemberOperation(actor.Role, target.Role, "update"); err != nil {
			return err
		}
		if err := permissions.ValidateRoleAssignment(actor.Role, *req.Role); err != nil {
			return err
		}

		if err := tx.Model(&target).Update("role", *req.Role).Error; err != nil {
			return err
		}
		member = &target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return member, nil
}

// Delete removes a member. Self-removal needs no permission and is always
// allowed except for the owner, who can never leave their own project.
// Removing someone else requires the remove_members permission and then
// standing over the target's role, in that order.
func (s *ProjectMemberService) Delete(projectID, userID uint, actor *models.ProjectMember) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.ProjectMember
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Member not found")
			}
			return err
		}

		if actor.UserID == userID {
			if target.Role == permissions.RoleOwner {
				return apperr.BadRequest("Owner cannot remove themselves")
			}
			return tx.Delete(&target).Error
		}

		if err := permissions.RequirePermission(actor.Role, permissions.RemoveMembers); err != nil {
			return err
		}
		if err := permissions.ValidateMemberOperation(actor.Role, target.Role, "remove"); err != nil {
			return err
		}

		return tx.Delete(&target).Error
	})
}
