package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

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

type calendarTestEnv struct {
	db      *gorm.DB
	handler *CalendarHandler
}

func setupCalendarTestEnv(t *testing.T) calendarTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.DailyNote{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	taskRepo := repository.NewTaskRepository(db)
	noteRepo := repository.NewDailyNoteRepository(db)
	handler := NewCalendarHandler(services.NewTaskService(taskRepo, noteRepo))

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return calendarTestEnv{db: db, handler: handler}
}

func (env calendarTestEnv) router(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
	})
	r.GET("/api/calendar/events", env.handler.ListEvents)
	r.POST("/api/calendar/events", env.handler.CreateEvent)
	return r
}

func TestCalendarHandler_CreateEvent_DefaultsToEvent(t *testing.T) {
	env := setupCalendarTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodPost, "/api/calendar/events", map[string]any{
		"title": "Team offsite",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var event models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	require.Equal(t, models.TaskTypeEvent, event.Type)
	require.Equal(t, models.PriorityMedium, event.Priority)
}

func TestCalendarHandler_CreateEvent_RejectsPlainTask(t *testing.T) {
	env := setupCalendarTestEnv(t)
	r := env.router(1)

	w := doRequest(t, r, http.MethodPost, "/api/calendar/events", map[string]any{
		"title": "Sneaky todo",
		"type":  "task",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalendarHandler_ListEvents_OnlyCalendarTypes(t *testing.T) {
	env := setupCalendarTestEnv(t)

	require.NoError(t, env.db.Create(&models.Task{UserID: 1, Title: "Plain todo", Type: models.TaskTypeTask, Priority: models.PriorityMedium}).Error)
	require.NoError(t, env.db.Create(&models.Task{UserID: 1, Title: "Sprint review", Type: models.TaskTypeMeeting, Priority: models.PriorityMedium}).Error)

	w := doRequest(t, env.router(1), http.MethodGet, "/api/calendar/events", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Events []models.Task `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Events, 1)
	require.Equal(t, "Sprint review", response.Events[0].Title)
}

func TestCalendarHandler_ListEvents_Window(t *testing.T) {
	env := setupCalendarTestEnv(t)

	inWindow := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	outOfWindow := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, env.db.Create(&models.Task{UserID: 1, Title: "September sync", Type: models.TaskTypeMeeting, Priority: models.PriorityMedium, StartTime: &inWindow}).Error)
	require.NoError(t, env.db.Create(&models.Task{UserID: 1, Title: "October kickoff", Type: models.TaskTypeMeeting, Priority: models.PriorityMedium, StartTime: &outOfWindow}).Error)

	url := fmt.Sprintf("/api/calendar/events?start=%s&end=%s",
		"2026-09-01T00:00:00Z", "2026-09-30T23:59:59Z")
	w := doRequest(t, env.router(1), http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Events []models.Task `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Events, 1)
	require.Equal(t, "September sync", response.Events[0].Title)
}

func TestCalendarHandler_ListEvents_InvalidWindow(t *testing.T) {
	env := setupCalendarTestEnv(t)

	w := doRequest(t, env.router(1), http.MethodGet, "/api/calendar/events?start=yesterday", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
