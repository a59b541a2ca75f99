package repository

import (
	"github.com/exeai/exeai/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyNoteRepository is a GORM implementation of DailyNoteRepository
type GormDailyNoteRepository struct {
	db *gorm.DB
}

// NewDailyNoteRepository creates a new DailyNoteRepository
func NewDailyNoteRepository(db *gorm.DB) DailyNoteRepository {
	return &GormDailyNoteRepository{db: db}
}

// GetOrCreate inserts an empty note for (user, date) unless one exists, then
// returns the surviving row. The insert-if-absent runs against the unique
// index, so concurrent first reads cannot produce duplicates.
func (r *GormDailyNoteRepository) GetOrCreate(userID uint64, date string) (*models.DailyNote, error) {
	note := models.DailyNote{
		UserID: userID,
		Date:   date,
	}

	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&note).Error
	if err != nil {
		return nil, err
	}

	return r.FindByUserAndDate(userID, date)
}

// FindByUserAndDate finds a note without creating it
func (r *GormDailyNoteRepository) FindByUserAndDate(userID uint64, date string) (*models.DailyNote, error) {
	var note models.DailyNote
	err := r.db.Preload("Tasks").
		Where("user_id = ? AND date = ?", userID, date).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Update persists changes to a note
func (r *GormDailyNoteRepository) Update(note *models.DailyNote) error {
	return r.db.Save(note).Error
}
