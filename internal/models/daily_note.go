package models

import "time"

// DateLayout is the canonical format for daily note dates.
const DateLayout = "2006-01-02"

// DailyNote holds one note per (user, calendar date). Created lazily on first
// access to a date; the unique index makes concurrent first reads converge on
// a single row.
type DailyNote struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_daily_notes_user_date" json:"user_id"`
	Date    string `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_notes_user_date" json:"date"`
	Content string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:DailyNoteID" json:"tasks,omitempty"`
}
