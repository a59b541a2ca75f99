package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidType     = errors.New("invalid task type")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidFilter   = errors.New("invalid time filter")
)

// TaskService handles task and calendar event business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	noteRepo repository.DailyNoteRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, noteRepo repository.DailyNoteRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		noteRepo: noteRepo,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID    uint64
	Time      repository.TimeFilter
	Completed *bool
	Type      *models.TaskType
	Priority  *models.TaskPriority
	Page      int
	PageSize  int
}

// ListEventsInput represents filters for listing calendar events
type ListEventsInput struct {
	UserID uint64
	From   *time.Time
	To     *time.Time
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID      uint64
	Title       string
	Description string
	Type        models.TaskType
	Priority    models.TaskPriority
	DueDate     *time.Time
	StartTime   *time.Time
	EndTime     *time.Time
	Location    string
	NoteDate    string
}

// UpdateTaskInput represents input for updating a task; nil fields are left
// untouched.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Type         *models.TaskType
	Priority     *models.TaskPriority
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
	StartTime    *time.Time
	EndTime      *time.Time
	Location     *string
}

// ListTasks returns the user's tasks matching the provided filters
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	switch input.Time {
	case "", repository.FilterAll, repository.FilterToday, repository.FilterOverdue, repository.FilterUpcoming:
	default:
		return nil, 0, ErrInvalidFilter
	}
	if input.Type != nil && !models.ValidTaskType(*input.Type) {
		return nil, 0, ErrInvalidType
	}
	if input.Priority != nil && !models.ValidTaskPriority(*input.Priority) {
		return nil, 0, ErrInvalidPriority
	}

	filter := repository.TaskFilter{
		UserID:    input.UserID,
		Time:      input.Time,
		Completed: input.Completed,
		Type:      input.Type,
		Priority:  input.Priority,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}
	if filter.Time == "" {
		filter.Time = repository.FilterAll
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// ListEvents returns the user's calendar-visible tasks within a time window
func (s *TaskService) ListEvents(input ListEventsInput) ([]models.Task, error) {
	filter := repository.TaskFilter{
		UserID: input.UserID,
		Time:   repository.FilterAll,
		Types:  models.CalendarTypes,
		From:   input.From,
		To:     input.To,
	}

	events, _, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// CreateTask creates a new task with defaults applied (type task, priority
// medium, not completed). When NoteDate is set the task is linked to that
// day's note, creating it if needed.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Type == "" {
		input.Type = models.TaskTypeTask
	}
	if !models.ValidTaskType(input.Type) {
		return nil, ErrInvalidType
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Priority:    input.Priority,
		Completed:   false,
		DueDate:     input.DueDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
	}

	if input.NoteDate != "" {
		if _, err := time.Parse(models.DateLayout, input.NoteDate); err != nil {
			return nil, ErrInvalidDate
		}
		note, err := s.noteRepo.GetOrCreate(input.UserID, input.NoteDate)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve daily note: %w", err)
		}
		task.DailyNoteID = &note.ID
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// CreateEvent creates a calendar entry; the type defaults to event and must be
// one of the calendar-visible types.
func (s *TaskService) CreateEvent(input CreateTaskInput) (*models.Task, error) {
	if input.Type == "" {
		input.Type = models.TaskTypeEvent
	}
	if input.Type == models.TaskTypeTask {
		return nil, ErrInvalidType
	}
	return s.CreateTask(input)
}

// UpdateTask applies a partial update to an owned task. Completion
// transitions stamp or clear CompletedAt.
func (s *TaskService) UpdateTask(task *models.Task, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Type != nil {
		if !models.ValidTaskType(*input.Type) {
			return nil, ErrInvalidType
		}
		task.Type = *input.Type
	}
	if input.Priority != nil {
		if !models.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Completed != nil && *input.Completed != task.Completed {
		task.Completed = *input.Completed
		if task.Completed {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.StartTime != nil {
		task.StartTime = input.StartTime
	}
	if input.EndTime != nil {
		task.EndTime = input.EndTime
	}
	if input.Location != nil {
		task.Location = *input.Location
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task owned by the user
func (s *TaskService) DeleteTask(id, userID uint64) error {
	if err := s.taskRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
