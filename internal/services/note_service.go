package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNoteNotFound = errors.New("daily note not found")
)

// NoteService handles daily note business logic
type NoteService struct {
	noteRepo repository.DailyNoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.DailyNoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// GetOrCreate returns the note for a date, creating an empty one on first
// access. Repeated calls for the same date return the same row.
func (s *NoteService) GetOrCreate(userID uint64, date string) (*models.DailyNote, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	note, err := s.noteRepo.GetOrCreate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create note: %w", err)
	}

	return note, nil
}

// UpdateContent replaces the content of the note for a date. The note must
// already exist; the autosaving editor always fetches before writing.
func (s *NoteService) UpdateContent(userID uint64, date, content string) (*models.DailyNote, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	note, err := s.noteRepo.FindByUserAndDate(userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	note.Content = content
	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}
