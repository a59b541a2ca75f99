package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return db, mock
}

func settingsRow(id, userID uint64, themeMode string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "calendar_default_view", "calendar_week_starts_on",
		"clock_format", "timezone", "workspace_theme_mode", "workspace_accent_color",
		"workspace_sidebar_expanded", "todo_sort_order", "todo_show_completed",
		"email_signature", "email_refresh_minutes", "messaging_notifications",
		"language", "date_format",
	}).AddRow(
		id, userID, "month", "monday",
		"24h", "UTC", themeMode, "blue",
		true, "due_date", true,
		"", 5, true,
		"en", "YYYY-MM-DD",
	)
}

// GetOrCreate must run as insert-if-absent against the unique user_id index,
// never as a read-then-write.
func TestSettingsRepository_GetOrCreate_InsertsSeed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(`INSERT INTO "user_settings" .* ON CONFLICT \("user_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1`).
		WillReturnRows(settingsRow(1, 7, "system"))

	settings, err := repo.GetOrCreate(7)
	require.NoError(t, err)
	require.EqualValues(t, 1, settings.ID)
	require.EqualValues(t, 7, settings.UserID)
	require.Equal(t, "month", settings.CalendarDefaultView)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSettingsRepository_GetOrCreate_KeepsExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	// The conflicting insert is a no-op; the stored row wins over the seed.
	mock.ExpectQuery(`INSERT INTO "user_settings" .* ON CONFLICT \("user_id"\) DO NOTHING RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1`).
		WillReturnRows(settingsRow(3, 7, "dark"))

	settings, err := repo.GetOrCreate(7)
	require.NoError(t, err)
	require.EqualValues(t, 3, settings.ID)
	require.Equal(t, "dark", settings.WorkspaceThemeMode)

	require.NoError(t, mock.ExpectationsWereMet())
}
