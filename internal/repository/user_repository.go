package repository

import (
	"errors"
	"fmt"

	"github.com/exeai/exeai/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating the user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateSettings is returned when seeding settings fails inside the signup transaction.
	ErrCreateSettings = errors.New("user repository: create settings failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithSettings creates the user and their seeded settings atomically.
func (r *GormUserRepository) CreateWithSettings(user *models.User, settings *models.UserSettings) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		settings.UserID = user.ID

		if err := tx.Create(settings).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateSettings, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user row
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
