package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/database"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/models"
)

// RequireOwnedTask loads the task addressed by :id scoped to the caller's
// user ID and stores it in context. Missing rows and rows owned by another
// user both answer 404 so task existence never leaks.
func RequireOwnedTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := parseIDParam(c)
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		err := database.GetDB().
			Where("id = ? AND user_id = ?", taskID, userID).
			First(&task).Error
		if err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// RequireOwnedPage loads the page addressed by :id scoped to the caller's
// user ID and stores it in context.
func RequireOwnedPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		pageID, ok := parseIDParam(c)
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var page models.Page
		err := database.GetDB().
			Where("id = ? AND user_id = ?", pageID, userID).
			First(&page).Error
		if err != nil {
			apierrors.NotFound(c, "Page not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPage, page)
		c.Next()
	}
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		c.Abort()
		return 0, false
	}
	return id, true
}
