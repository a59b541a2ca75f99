package services

import (
	"fmt"

	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
)

// SettingsService handles user settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// UpdateSettingsInput represents a partial settings patch; nil fields are
// left untouched.
type UpdateSettingsInput struct {
	CalendarDefaultView      *string `json:"calendar_default_view"`
	CalendarWeekStartsOn     *string `json:"calendar_week_starts_on"`
	ClockFormat              *string `json:"clock_format"`
	Timezone                 *string `json:"timezone"`
	WorkspaceThemeMode       *string `json:"workspace_theme_mode"`
	WorkspaceAccentColor     *string `json:"workspace_accent_color"`
	WorkspaceSidebarExpanded *bool   `json:"workspace_sidebar_expanded"`
	TodoSortOrder            *string `json:"todo_sort_order"`
	TodoShowCompleted        *bool   `json:"todo_show_completed"`
	EmailSignature           *string `json:"email_signature"`
	EmailRefreshMinutes      *int    `json:"email_refresh_minutes"`
	MessagingNotifications   *bool   `json:"messaging_notifications"`
	Language                 *string `json:"language"`
	DateFormat               *string `json:"date_format"`
}

// GetSettings returns the user's settings, seeding defaults on first access.
func (s *SettingsService) GetSettings(userID uint64) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial patch to the user's settings. Fields not
// present in the patch keep their stored values.
func (s *SettingsService) UpdateSettings(userID uint64, input UpdateSettingsInput) (*models.UserSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if input.CalendarDefaultView != nil {
		settings.CalendarDefaultView = *input.CalendarDefaultView
	}
	if input.CalendarWeekStartsOn != nil {
		settings.CalendarWeekStartsOn = *input.CalendarWeekStartsOn
	}
	if input.ClockFormat != nil {
		settings.ClockFormat = *input.ClockFormat
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.WorkspaceThemeMode != nil {
		settings.WorkspaceThemeMode = *input.WorkspaceThemeMode
	}
	if input.WorkspaceAccentColor != nil {
		settings.WorkspaceAccentColor = *input.WorkspaceAccentColor
	}
	if input.WorkspaceSidebarExpanded != nil {
		settings.WorkspaceSidebarExpanded = *input.WorkspaceSidebarExpanded
	}
	if input.TodoSortOrder != nil {
		settings.TodoSortOrder = *input.TodoSortOrder
	}
	if input.TodoShowCompleted != nil {
		settings.TodoShowCompleted = *input.TodoShowCompleted
	}
	if input.EmailSignature != nil {
		settings.EmailSignature = *input.EmailSignature
	}
	if input.EmailRefreshMinutes != nil {
		settings.EmailRefreshMinutes = *input.EmailRefreshMinutes
	}
	if input.MessagingNotifications != nil {
		settings.MessagingNotifications = *input.MessagingNotifications
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}

	if err := s.settingsRepo.Update(settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return settings, nil
}
