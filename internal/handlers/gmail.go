package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/exeai/exeai/internal/constants"
	"github.com/exeai/exeai/internal/dto"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/middleware"
	"github.com/exeai/exeai/internal/models"
	"github.com/exeai/exeai/internal/services"
	"github.com/exeai/exeai/internal/utils"
)

type GmailHandler struct {
	authService  *services.AuthService
	gmailService *services.GmailService
}

func NewGmailHandler(authService *services.AuthService, gmailService *services.GmailService) *GmailHandler {
	return &GmailHandler{
		authService:  authService,
		gmailService: gmailService,
	}
}

// AuthURL returns the Google consent URL; the state token is stashed in the
// session for the callback to verify.
func (h *GmailHandler) AuthURL(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		apierrors.InternalError(c, "Failed to generate state token")
		return
	}

	url, err := h.gmailService.AuthCodeURL(state)
	if err != nil {
		respondGmailError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyGmailState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Callback completes the OAuth flow: verifies the state token, exchanges the
// code, and persists the tokens.
func (h *GmailHandler) Callback(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	session := sessions.Default(c)
	expectedState, _ := session.Get(constants.SessionKeyGmailState).(string)
	session.Delete(constants.SessionKeyGmailState)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	if expectedState == "" || c.Query("state") != expectedState {
		apierrors.BadRequest(c, "Invalid state parameter")
		return
	}

	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Missing authorization code")
		return
	}

	if err := h.gmailService.Connect(c.Request.Context(), user, code); err != nil {
		respondGmailError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Status reports whether a Gmail account is linked.
func (h *GmailHandler) Status(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected": user.GmailConnected(),
		"address":   user.GmailAddress,
		"enabled":   h.gmailService.Enabled(),
	})
}

// Disconnect clears the stored Gmail tokens.
func (h *GmailHandler) Disconnect(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if err := h.gmailService.Disconnect(user); err != nil {
		apierrors.InternalError(c, "Failed to disconnect gmail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Gmail disconnected",
	})
}

// ListMessages returns the first page of the user's inbox, flattened.
func (h *GmailHandler) ListMessages(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	messages, err := h.gmailService.ListMessages(c.Request.Context(), user)
	if err != nil {
		respondGmailError(c, err)
		return
	}

	if messages == nil {
		messages = []services.EmailMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// MarkRead removes the unread label from a message.
func (h *GmailHandler) MarkRead(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	messageID := c.Param("id")
	if messageID == "" {
		apierrors.BadRequest(c, "Missing message id")
		return
	}

	if err := h.gmailService.MarkRead(c.Request.Context(), user, messageID); err != nil {
		respondGmailError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message marked as read",
	})
}

func (h *GmailHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, false
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return nil, false
	}

	return user, true
}

func respondGmailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGmailNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrGmailNotConnected):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Gmail request failed")
	}
}
