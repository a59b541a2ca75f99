package services

import (
	"errors"
	"fmt"

	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"gorm.io/gorm"
)

var ErrPageNotFound = errors.New("page not found")

// PageService handles page business logic
type PageService struct {
	pageRepo repository.PageRepository
}

// NewPageService creates a new PageService
func NewPageService(pageRepo repository.PageRepository) *PageService {
	return &PageService{pageRepo: pageRepo}
}

// CreatePageInput represents input for creating a page
type CreatePageInput struct {
	UserID  uint64
	Title   string
	Content string
}

// UpdatePageInput represents input for updating a page; nil fields are left
// untouched.
type UpdatePageInput struct {
	Title   *string
	Content *string
}

// ListPages returns the user's pages, most recently updated first
func (s *PageService) ListPages(userID uint64) ([]models.Page, error) {
	pages, err := s.pageRepo.List(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}
	return pages, nil
}

// CreatePage creates a new page
func (s *PageService) CreatePage(input CreatePageInput) (*models.Page, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	page := &models.Page{
		UserID:  input.UserID,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := s.pageRepo.Create(page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return page, nil
}

// UpdatePage applies a partial update to an owned page
func (s *PageService) UpdatePage(page *models.Page, input UpdatePageInput) (*models.Page, error) {
	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		page.Title = *input.Title
	}
	if input.Content != nil {
		page.Content = *input.Content
	}

	if err := s.pageRepo.Update(page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	return page, nil
}

// DeletePage deletes a page owned by the user
func (s *PageService) DeletePage(id, userID uint64) error {
	if err := s.pageRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return fmt.Errorf("failed to delete page: %w", err)
	}
	return nil
}
