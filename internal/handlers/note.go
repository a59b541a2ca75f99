package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/services"
)

type NoteHandler struct {
	noteService *services.NoteService
}

func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// GetDailyNote returns the note for :date, creating an empty one on first
// access.
func (h *NoteHandler) GetDailyNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	note, err := h.noteService.GetOrCreate(userID, c.Param("date"))
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

// UpdateDailyNote replaces the content of the note for :date.
func (h *NoteHandler) UpdateDailyNote(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateNoteRequest struct {
		Content string `json:"content"`
	}

	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateContent(userID, c.Param("date"), req.Content)
	if err != nil {
		respondNoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, note)
}

func respondNoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDate):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
