package models

import "time"

// UserSettings is the singleton-per-user preference record. The zero row is
// never exposed; DefaultSettings is the seed used on first access.
type UserSettings struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	UserID uint64 `gorm:"not null;uniqueIndex" json:"user_id"`

	CalendarDefaultView  string `gorm:"type:varchar(20);not null" json:"calendar_default_view"`
	CalendarWeekStartsOn string `gorm:"type:varchar(10);not null" json:"calendar_week_starts_on"`

	ClockFormat string `gorm:"type:varchar(10);not null" json:"clock_format"`
	Timezone    string `gorm:"type:varchar(64);not null" json:"timezone"`

	WorkspaceThemeMode       string `gorm:"type:varchar(10);not null" json:"workspace_theme_mode"`
	WorkspaceAccentColor     string `gorm:"type:varchar(20);not null" json:"workspace_accent_color"`
	WorkspaceSidebarExpanded bool   `gorm:"not null" json:"workspace_sidebar_expanded"`

	TodoSortOrder     string `gorm:"type:varchar(20);not null" json:"todo_sort_order"`
	TodoShowCompleted bool   `gorm:"not null" json:"todo_show_completed"`

	EmailSignature      string `gorm:"type:text" json:"email_signature"`
	EmailRefreshMinutes int    `gorm:"not null" json:"email_refresh_minutes"`

	MessagingNotifications bool `gorm:"not null" json:"messaging_notifications"`

	Language   string `gorm:"type:varchar(10);not null" json:"language"`
	DateFormat string `gorm:"type:varchar(20);not null" json:"date_format"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// DefaultSettings returns the literal seed record for a user's first settings
// fetch.
func DefaultSettings(userID uint64) UserSettings {
	return UserSettings{
		UserID:                   userID,
		CalendarDefaultView:      "month",
		CalendarWeekStartsOn:     "monday",
		ClockFormat:              "24h",
		Timezone:                 "UTC",
		WorkspaceThemeMode:       "system",
		WorkspaceAccentColor:     "blue",
		WorkspaceSidebarExpanded: true,
		TodoSortOrder:            "due_date",
		TodoShowCompleted:        true,
		EmailSignature:           "",
		EmailRefreshMinutes:      5,
		MessagingNotifications:   true,
		Language:                 "en",
		DateFormat:               "YYYY-MM-DD",
	}
}
