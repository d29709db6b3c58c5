package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/middleware"
	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/internal/services"
	"github.com/taskcamp/taskcamp/pkg/apperr"
	"github.com/taskcamp/taskcamp/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	memberService  *services.ProjectMemberService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		memberService:  services.NewProjectMemberService(db),
	}
}

// requireMembership resolves the caller's membership in the :id project and,
// when perm is non-empty, enforces it. Non-members are turned away with 403
// regardless of whether the project exists, so project ids cannot be probed.
func requireMembership(c *gin.Context, memberService *services.ProjectMemberService, perm permissions.Permission) (*models.ProjectMember, uint, bool) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, 0, false
	}

	member, err := memberService.GetMembership(projectID, middleware.GetUserID(c))
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			response.Forbidden(c, "You are not a member of this project")
			return nil, 0, false
		}
		response.Error(c, err)
		return nil, 0, false
	}

	if perm != "" {
		if err := permissions.RequirePermission(member.Role, perm); err != nil {
			response.Error(c, err)
			return nil, 0, false
		}
	}

	return member, projectID, true
}

// List returns the caller's projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Create creates a project with the caller as owner
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// GetByID returns one project
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.ViewProject)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(projectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Update patches a project
// PATCH /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.UpdateProject)
	if !ok {
		return
	}

	var req services.ProjectPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

// Delete removes a project with its members and tasks
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.DeleteProject)
	if !ok {
		return
	}

	if err := h.projectService.Delete(projectID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
