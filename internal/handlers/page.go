package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/exeai/exeai/internal/constants"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/services"
)

type PageHandler struct {
	pageService *services.PageService
}

func NewPageHandler(pageService *services.PageService) *PageHandler {
	return &PageHandler{
		pageService: pageService,
	}
}

// ListPages returns the current user's pages, most recently updated first.
func (h *PageHandler) ListPages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	pages, err := h.pageService.ListPages(userID)
	if err != nil {
		respondPageError(c, err)
		return
	}

	if pages == nil {
		pages = []models.Page{}
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetPage returns the page loaded by the ownership middleware.
func (h *PageHandler) GetPage(c *gin.Context) {
	page, ok := pageFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreatePage creates a new page.
func (h *PageHandler) CreatePage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePageRequest struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content"`
	}

	var req CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	page, err := h.pageService.CreatePage(services.CreatePageInput{
		UserID:  userID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, page)
}

// UpdatePage applies a partial update to the page loaded by the ownership
// middleware.
func (h *PageHandler) UpdatePage(c *gin.Context) {
	page, ok := pageFromContext(c)
	if !ok {
		return
	}

	type UpdatePageRequest struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}

	var req UpdatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.pageService.UpdatePage(&page, services.UpdatePageInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeletePage deletes the page loaded by the ownership middleware.
func (h *PageHandler) DeletePage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	page, ok := pageFromContext(c)
	if !ok {
		return
	}

	if err := h.pageService.DeletePage(page.ID, userID); err != nil {
		respondPageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Page deleted successfully",
	})
}

func pageFromContext(c *gin.Context) (models.Page, bool) {
	pageInterface, exists := c.Get(constants.ContextKeyPage)
	if !exists {
		apierrors.InternalError(c, "Page not found in context")
		return models.Page{}, false
	}

	page, ok := pageInterface.(models.Page)
	if !ok {
		apierrors.InternalError(c, "Invalid page data")
		return models.Page{}, false
	}

	return page, true
}

func respondPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPageNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
