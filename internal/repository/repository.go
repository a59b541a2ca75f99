package repository

import (
	"time"

	"github.com/exeai/exeai/internal/models"
)

// TimeFilter selects tasks relative to the current day.
type TimeFilter string

const (
	FilterAll      TimeFilter = "all"
	FilterToday    TimeFilter = "today"
	FilterOverdue  TimeFilter = "overdue"
	FilterUpcoming TimeFilter = "upcoming"
)

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID    uint64
	Time      TimeFilter
	Completed *bool
	Type      *models.TaskType
	Types     []models.TaskType
	Priority  *models.TaskPriority
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithSettings creates a user and their seeded settings record
	// within a single transaction.
	CreateWithSettings(user *models.User, settings *models.UserSettings) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user row
	Update(user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDAndUser finds a task by ID scoped to its owner
	FindByIDAndUser(id, userID uint64) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task scoped to its owner
	Delete(id, userID uint64) error
}

// PageRepository defines the interface for page data access
type PageRepository interface {
	Create(page *models.Page) error
	FindByIDAndUser(id, userID uint64) (*models.Page, error)
	List(userID uint64) ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id, userID uint64) error
}

// DailyNoteRepository defines the interface for daily note data access
type DailyNoteRepository interface {
	// GetOrCreate returns the note for (user, date), creating an empty one
	// atomically when absent.
	GetOrCreate(userID uint64, date string) (*models.DailyNote, error)

	// FindByUserAndDate finds a note without creating it
	FindByUserAndDate(userID uint64, date string) (*models.DailyNote, error)

	// Update persists changes to a note
	Update(note *models.DailyNote) error
}

// SettingsRepository defines the interface for user settings data access
type SettingsRepository interface {
	// GetOrCreate returns the settings row for a user, seeding defaults
	// atomically when absent.
	GetOrCreate(userID uint64) (*models.UserSettings, error)

	// Update persists changes to a settings row
	Update(settings *models.UserSettings) error
}
