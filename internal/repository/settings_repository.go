package repository

import (
	"github.com/exeai/exeai/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository is a GORM implementation of SettingsRepository
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetOrCreate seeds the default settings row unless one exists, then returns
// the surviving row. Insert-if-absent against the unique user_id index keeps
// concurrent first reads from creating duplicates.
func (r *GormSettingsRepository) GetOrCreate(userID uint64) (*models.UserSettings, error) {
	seed := models.DefaultSettings(userID)

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&seed).Error
	if err != nil {
		return nil, err
	}

	var settings models.UserSettings
	if err := r.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// Update persists changes to a settings row
func (r *GormSettingsRepository) Update(settings *models.UserSettings) error {
	return r.db.Save(settings).Error
}
