package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskType string

const (
	TaskTypeTask     TaskType = "task"
	TaskTypeMeeting  TaskType = "meeting"
	TaskTypeEvent    TaskType = "event"
	TaskTypeTravel   TaskType = "travel"
	TaskTypeBirthday TaskType = "birthday"
	TaskTypeReminder TaskType = "reminder"
)

// CalendarTypes are the task types surfaced by the calendar endpoints.
var CalendarTypes = []TaskType{TaskTypeMeeting, TaskTypeEvent, TaskTypeTravel, TaskTypeBirthday, TaskTypeReminder}

// ValidTaskType reports whether t is one of the known task types.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeTask, TaskTypeMeeting, TaskTypeEvent, TaskTypeTravel, TaskTypeBirthday, TaskTypeReminder:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidTaskPriority reports whether p is one of the known priorities.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a polymorphic record serving both to-do items and calendar entries,
// disambiguated by Type.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	UserID      uint64       `gorm:"not null;index" json:"user_id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Type        TaskType     `gorm:"type:varchar(20);not null;default:'task'" json:"type"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Completed   bool         `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time   `json:"completed_at"`
	DueDate     *time.Time   `json:"due_date"`
	StartTime   *time.Time   `json:"start_time"`
	EndTime     *time.Time   `json:"end_time"`
	Location    string       `gorm:"type:varchar(255)" json:"location"`
	DailyNoteID *uint64      `gorm:"index" json:"daily_note_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User      User       `gorm:"foreignKey:UserID" json:"-"`
	DailyNote *DailyNote `gorm:"foreignKey:DailyNoteID" json:"-"`
}
