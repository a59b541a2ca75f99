package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/dto"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"github.com/exeai/exeai/internal/services"
	"github.com/exeai/exeai/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the current user's tasks, filterable by time window
// (today, overdue, upcoming, all), completion, type, and priority.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		UserID:   userID,
		Time:     repository.TimeFilter(c.DefaultQuery("filter", string(repository.FilterAll))),
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if v := c.Query("completed"); v != "" {
		completed := v == "true"
		input.Completed = &completed
	}
	if v := c.Query("type"); v != "" {
		t := models.TaskType(v)
		input.Type = &t
	}
	if v := c.Query("priority"); v != "" {
		p := models.TaskPriority(v)
		input.Priority = &p
	}

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns the task loaded by the ownership middleware.
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task. Omitted type and priority fall back to
// "task" and "medium".
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Type        string     `json:"type"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		Location    string     `json:"location"`
		NoteDate    string     `json:"note_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		NoteDate:    req.NoteDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to the task loaded by the ownership
// middleware. The raw body is inspected so nullable fields (due_date) can be
// cleared explicitly.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if title, ok := rawReq["title"].(string); ok {
		input.Title = &title
	}
	if description, ok := rawReq["description"].(string); ok {
		input.Description = &description
	}
	if typeStr, ok := rawReq["type"].(string); ok {
		t := models.TaskType(typeStr)
		input.Type = &t
	}
	if priorityStr, ok := rawReq["priority"].(string); ok {
		p := models.TaskPriority(priorityStr)
		input.Priority = &p
	}
	if completed, ok := rawReq["completed"].(bool); ok {
		input.Completed = &completed
	}
	if _, present := rawReq["due_date"]; present {
		if rawReq["due_date"] == nil {
			input.ClearDueDate = true
		} else if s, ok := rawReq["due_date"].(string); ok {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}
	if s, ok := rawReq["start_time"].(string); ok {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			apierrors.BadRequest(c, "Invalid start_time")
			return
		}
		input.StartTime = &parsed
	}
	if s, ok := rawReq["end_time"].(string); ok {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			apierrors.BadRequest(c, "Invalid end_time")
			return
		}
		input.EndTime = &parsed
	}
	if location, ok := rawReq["location"].(string); ok {
		input.Location = &location
	}

	updated, err := h.taskService.UpdateTask(&task, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTask deletes the task loaded by the ownership middleware.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(task.ID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.InternalError(c, "Task not found in context")
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	if !ok {
		apierrors.InternalError(c, "Invalid task data")
		return models.Task{}, false
	}

	return task, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidType),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidFilter),
		errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
