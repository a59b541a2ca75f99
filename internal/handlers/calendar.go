package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/services"
)

// CalendarHandler exposes the calendar view over the tasks table: the same
// rows filtered to calendar-visible types.
type CalendarHandler struct {
	taskService *services.TaskService
}

func NewCalendarHandler(taskService *services.TaskService) *CalendarHandler {
	return &CalendarHandler{
		taskService: taskService,
	}
}

// ListEvents returns calendar entries, optionally restricted to a start/end
// window (RFC3339).
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input := services.ListEventsInput{UserID: userID}

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid start")
			return
		}
		input.From = &parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			apierrors.BadRequest(c, "Invalid end")
			return
		}
		input.To = &parsed
	}

	events, err := h.taskService.ListEvents(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if events == nil {
		events = []models.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent creates a calendar entry; the type defaults to "event".
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateEventRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		Type        string     `json:"type"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		Location    string     `json:"location"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.taskService.CreateEvent(services.CreateTaskInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Type:        models.TaskType(req.Type),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}
