package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetSettings returns the current user's settings, seeding the default
// record on first access.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to load settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial patch; fields absent from the body keep
// their stored values.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var input services.UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.UpdateSettings(userID, input)
	if err != nil {
		apierrors.InternalError(c, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}
