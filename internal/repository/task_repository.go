package repository

import (
	"time"

	"github.com/exeai/exeai/internal/database"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDAndUser finds a task by ID scoped to its owner. A task belonging to
// another user yields gorm.ErrRecordNotFound, never the row.
func (r *GormTaskRepository) FindByIDAndUser(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("tasks.user_id = ?", filter.UserID)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	switch filter.Time {
	case FilterToday:
		query = query.Where(
			"(tasks.due_date >= ? AND tasks.due_date < ?) OR (tasks.start_time >= ? AND tasks.start_time < ?)",
			startOfDay, endOfDay, startOfDay, endOfDay,
		)
	case FilterOverdue:
		query = query.Where("tasks.due_date < ? AND tasks.completed = ?", startOfDay, false)
	case FilterUpcoming:
		query = query.Where("tasks.due_date >= ? OR tasks.start_time >= ?", endOfDay, endOfDay)
	}

	if filter.Completed != nil {
		query = query.Where("tasks.completed = ?", *filter.Completed)
	}
	if filter.Type != nil {
		query = query.Where("tasks.type = ?", *filter.Type)
	}
	if len(filter.Types) > 0 {
		query = query.Where("tasks.type IN ?", filter.Types)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.From != nil {
		query = query.Where("tasks.start_time >= ? OR tasks.due_date >= ?", *filter.From, *filter.From)
	}
	if filter.To != nil {
		query = query.Where("tasks.start_time < ? OR tasks.due_date < ?", *filter.To, *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC, tasks.created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (filter.Page - 1) * filter.PageSize,
			Limit:  filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task scoped to its owner
func (r *GormTaskRepository) Delete(id, userID uint64) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
