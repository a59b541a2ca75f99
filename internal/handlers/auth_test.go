package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/database"
	"github.com/exeai/exeai/internal/dto"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"github.com/exeai/exeai/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionName, store))
	r.POST("/api/auth/signup", env.handler.Signup)
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":    "new@example.com",
		"password": "supersecret",
		"name":     "New User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new@example.com", response.Email)
	require.Equal(t, string(models.TierFreeTrial), response.SubscriptionTier)
	require.NotNil(t, response.TrialEndsAt)
	require.WithinDuration(t, time.Now().AddDate(0, 0, constants.TrialPeriodDays), *response.TrialEndsAt, time.Minute)

	// Signing up also logs the user in.
	require.NotEmpty(t, w.Result().Cookies())

	// The default settings row is seeded in the same transaction.
	var settings models.UserSettings
	require.NoError(t, env.db.Where("user_id = ?", response.ID).First(&settings).Error)
	require.Equal(t, "month", settings.CalendarDefaultView)
	require.Equal(t, "system", settings.WorkspaceThemeMode)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":    "short@example.com",
		"password": "1234567",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]string{
		"email":    "taken@example.com",
		"password": "supersecret",
	}

	w := postJSON(t, r, "/api/auth/signup", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/signup", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestAuthHandler_Signup_EmailCaseInsensitive(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":    "Mixed@Example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":    "mixed@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Signup_InvalidBody(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing@example.com", response.Email)
	require.NotEmpty(t, w.Result().Cookies())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrongpassword",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(services.SignupInput{
		Email:    "me@example.com",
		Password: "supersecret",
		Name:     "Me",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "Me", response.Name)
}

func TestAuthHandler_GetCurrentUser_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
