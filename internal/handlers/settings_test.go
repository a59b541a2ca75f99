package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/database"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"github.com/exeai/exeai/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type settingsTestEnv struct {
	db      *gorm.DB
	handler *SettingsHandler
}

func setupSettingsTestEnv(t *testing.T) settingsTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	settingsRepo := repository.NewSettingsRepository(db)
	handler := NewSettingsHandler(services.NewSettingsService(settingsRepo))

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return settingsTestEnv{db: db, handler: handler}
}

func (env settingsTestEnv) router(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})
	r.GET("/api/settings", env.handler.GetSettings)
	r.PATCH("/api/settings", env.handler.UpdateSettings)
	return r
}

func TestSettingsHandler_GetSettings_SeedsDefaults(t *testing.T) {
	env := setupSettingsTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.NotZero(t, settings.ID)
	require.Equal(t, "month", settings.CalendarDefaultView)
	require.Equal(t, "monday", settings.CalendarWeekStartsOn)
	require.Equal(t, "24h", settings.ClockFormat)
	require.Equal(t, "UTC", settings.Timezone)
	require.Equal(t, "system", settings.WorkspaceThemeMode)
	require.True(t, settings.WorkspaceSidebarExpanded)
	require.True(t, settings.TodoShowCompleted)
	require.Equal(t, 5, settings.EmailRefreshMinutes)
	require.Equal(t, "en", settings.Language)

	// A second fetch returns the same row.
	w = doRequest(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var again models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	require.Equal(t, settings.ID, again.ID)

	var count int64
	require.NoError(t, env.db.Model(&models.UserSettings{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSettingsHandler_UpdateSettings_SingleField(t *testing.T) {
	env := setupSettingsTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodPatch, "/api/settings", map[string]any{
		"workspace_theme_mode": "dark",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.Equal(t, "dark", settings.WorkspaceThemeMode)

	// Untouched fields keep their defaults.
	require.Equal(t, "month", settings.CalendarDefaultView)
	require.Equal(t, "24h", settings.ClockFormat)
	require.Equal(t, "UTC", settings.Timezone)
	require.True(t, settings.WorkspaceSidebarExpanded)
}

func TestSettingsHandler_UpdateSettings_FalseIsNotMissing(t *testing.T) {
	env := setupSettingsTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodPatch, "/api/settings", map[string]any{
		"todo_show_completed": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.False(t, settings.TodoShowCompleted)
	require.True(t, settings.WorkspaceSidebarExpanded)
}

func TestSettingsHandler_UpdateSettings_PersistsAcrossFetches(t *testing.T) {
	env := setupSettingsTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodPatch, "/api/settings", map[string]any{
		"timezone":              "Europe/Berlin",
		"email_refresh_minutes": 15,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.Equal(t, "Europe/Berlin", settings.Timezone)
	require.Equal(t, 15, settings.EmailRefreshMinutes)
}

func TestSettingsHandler_Settings_ScopedToUser(t *testing.T) {
	env := setupSettingsTestEnv(t)

	w := doRequest(t, env.router(1), http.MethodPatch, "/api/settings", map[string]any{
		"workspace_accent_color": "green",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, env.router(2), http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.UserSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	require.Equal(t, "blue", settings.WorkspaceAccentColor)
}
