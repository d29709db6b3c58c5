package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/internal/services"
	"github.com/taskcamp/taskcamp/pkg/response"
	"gorm.io/gorm"
)

type ProjectMemberHandler struct {
	memberService *services.ProjectMemberService
}

func NewProjectMemberHandler(db *gorm.DB) *ProjectMemberHandler {
	return &ProjectMemberHandler{
		memberService: services.NewProjectMemberService(db),
	}
}

// List returns the project's members
// GET /api/projects/:id/members
func (h *ProjectMemberHandler) List(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.ViewMembers)
	if !ok {
		return
	}

	var req services.MemberListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.memberService.List(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Add brings a user into the project
// POST /api/projects/:id/members
func (h *ProjectMemberHandler) Add(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, permissions.AddMembers)
	if !ok {
		return
	}

	var req services.MemberAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(projectID, actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update changes a member's role
// PATCH /api/projects/:id/members/:userId
func (h *ProjectMemberHandler) Update(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, permissions.UpdateMembers)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	var req services.MemberPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Update(projectID, userID, actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, member)
}

// Delete removes a member. No permission is gated here: leaving the project
// is open to everyone but the owner, and the service checks the rest.
// DELETE /api/projects/:id/members/:userId
func (h *ProjectMemberHandler) Delete(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, "")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.memberService.Delete(projectID, userID, actor); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
