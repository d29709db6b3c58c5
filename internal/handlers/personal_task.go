package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskcamp/taskcamp/internal/middleware"
	"github.com/taskcamp/taskcamp/internal/services"
	"github.com/taskcamp/taskcamp/pkg/response"
	"gorm.io/gorm"
)

type PersonalTaskHandler struct {
	taskService *services.PersonalTaskService
}

func NewPersonalTaskHandler(db *gorm.DB) *PersonalTaskHandler {
	return &PersonalTaskHandler{
		taskService: services.NewPersonalTaskService(db),
	}
}

// List returns the caller's personal tasks
// GET /api/tasks
func (h *PersonalTaskHandler) List(c *gin.Context) {
	var req services.PersonalTaskListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.taskService.List(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Create adds a personal task
// POST /api/tasks
func (h *PersonalTaskHandler) Create(c *gin.Context) {
	var req services.PersonalTaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, task)
}

// GetByID returns one personal task
// GET /api/tasks/:id
func (h *PersonalTaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetByID(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Update patches a personal task
// PATCH /api/tasks/:id
func (h *PersonalTaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.PersonalTaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, task)
}

// Delete removes a personal task
// DELETE /api/tasks/:id
func (h *PersonalTaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// parseIDParam reads a uint path parameter, replying 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
