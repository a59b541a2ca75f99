package repository

import (
	"github.com/exeai/exeai/internal/database"
	"github.com/exeai/exeai/internal/models"
	"gorm.io/gorm"
)

// GormPageRepository is a GORM implementation of PageRepository
type GormPageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(db *gorm.DB) PageRepository {
	return &GormPageRepository{db: db}
}

func (r *GormPageRepository) Create(page *models.Page) error {
	return r.db.Create(page).Error
}

func (r *GormPageRepository) FindByIDAndUser(id, userID uint64) (*models.Page, error) {
	var page models.Page
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *GormPageRepository) List(userID uint64) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Scopes(database.OwnedBy(userID)).
		Order("updated_at DESC").
		Find(&pages).Error
	return pages, err
}

func (r *GormPageRepository) Update(page *models.Page) error {
	return r.db.Save(page).Error
}

func (r *GormPageRepository) Delete(id, userID uint64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Page{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
