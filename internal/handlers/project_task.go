package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/internal/permissions"
	"github.com/taskcamp/taskcamp/internal/services"
	"github.com/taskcamp/taskcamp/pkg/response"
	"gorm.io/gorm"
)

type ProjectTaskHandler struct {
	taskService   *services.ProjectTaskService
	memberService *services.ProjectMemberService
}

func NewProjectTaskHandler(db *gorm.DB) *ProjectTaskHandler {
	return &ProjectTaskHandler{
		taskService:   services.NewProjectTaskService(db),
		memberService: services.NewProjectMemberService(db),
	}
}

// List returns the project's tasks
// GET /api/projects/:id/tasks
func (h *ProjectTaskHandler) List(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.ViewTasks)
	if !ok {
		return
	}

	var req services.ProjectTaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.taskService.List(projectID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Create adds a task to the project
// POST /api/projects/:id/tasks
func (h *ProjectTaskHandler) Create(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, permissions.AddTasks)
	if !ok {
		return
	}

	var req services.ProjectTaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(projectID, actor.UserID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// GetByID returns one task
// GET /api/projects/:id/tasks/:taskId
func (h *ProjectTaskHandler) GetByID(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.ViewTasks)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(projectID, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Update patches a task. The membership gate is permission-free here: the
// service decides between update_tasks and the own-task status carve-out.
// PATCH /api/projects/:id/tasks/:taskId
func (h *ProjectTaskHandler) Update(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, "")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var req services.ProjectTaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(projectID, taskID, actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Delete removes a task
// DELETE /api/projects/:id/tasks/:taskId
func (h *ProjectTaskHandler) Delete(c *gin.Context) {
	_, projectID, ok := requireMembership(c, h.memberService, permissions.RemoveTasks)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.Delete(projectID, taskID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Assign claims an open task for the caller
// POST /api/projects/:id/tasks/:taskId/assign
func (h *ProjectTaskHandler) Assign(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, permissions.AssignOpenTask)
	if !ok {
		return
	}
	taskID, ok := h.openTask(c, projectID)
	if !ok {
		return
	}

	task, err := h.taskService.Assign(projectID, taskID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Unassign releases an open task's claim
// POST /api/projects/:id/tasks/:taskId/unassign
func (h *ProjectTaskHandler) Unassign(c *gin.Context) {
	actor, projectID, ok := requireMembership(c, h.memberService, permissions.UnassignOpenTask)
	if !ok {
		return
	}
	taskID, ok := h.openTask(c, projectID)
	if !ok {
		return
	}

	task, err := h.taskService.Unassign(projectID, taskID, actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// openTask resolves :taskId and rejects claims against fixed tasks.
func (h *ProjectTaskHandler) openTask(c *gin.Context, projectID uint) (uint, bool) {
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return 0, false
	}

	task, err := h.taskService.GetByID(projectID, taskID)
	if err != nil {
		response.Error(c, err)
		return 0, false
	}
	if task.Kind != models.TaskKindOpen {
		response.BadRequest(c, "This operation allowed only for open tasks.")
		return 0, false
	}
	return taskID, true
}
