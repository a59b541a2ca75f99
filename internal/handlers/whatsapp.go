package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/exeai/exeai/internal/errors"
	"github.com/exeai/exeai/internal/whatsapp"
)

type WhatsAppHandler struct {
	manager *whatsapp.Manager
}

func NewWhatsAppHandler(manager *whatsapp.Manager) *WhatsAppHandler {
	return &WhatsAppHandler{
		manager: manager,
	}
}

// Connect starts the WhatsApp session. A never-paired device gets a QR login
// challenge, readable via Status.
func (h *WhatsAppHandler) Connect(c *gin.Context) {
	if h.manager == nil {
		apierrors.ServiceUnavailable(c, "WhatsApp integration is not configured")
		return
	}

	if err := h.manager.Connect(c.Request.Context()); err != nil {
		apierrors.InternalError(c, "Failed to start WhatsApp session")
		return
	}

	c.JSON(http.StatusOK, h.manager.Status())
}

// Status returns the connection state, the pending QR challenge if any, and
// the buffered message count.
func (h *WhatsAppHandler) Status(c *gin.Context) {
	if h.manager == nil {
		apierrors.ServiceUnavailable(c, "WhatsApp integration is not configured")
		return
	}

	c.JSON(http.StatusOK, h.manager.Status())
}

// Disconnect closes the socket but keeps the stored credentials.
func (h *WhatsAppHandler) Disconnect(c *gin.Context) {
	if h.manager == nil {
		apierrors.ServiceUnavailable(c, "WhatsApp integration is not configured")
		return
	}

	h.manager.Disconnect()

	c.JSON(http.StatusOK, gin.H{
		"message": "WhatsApp disconnected",
	})
}

// Logout ends the session and drops the stored credentials.
func (h *WhatsAppHandler) Logout(c *gin.Context) {
	if h.manager == nil {
		apierrors.ServiceUnavailable(c, "WhatsApp integration is not configured")
		return
	}

	if err := h.manager.Logout(); err != nil {
		apierrors.InternalError(c, "Failed to log out of WhatsApp")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "WhatsApp logged out",
	})
}

// Messages returns the buffered inbound messages, newest first.
func (h *WhatsAppHandler) Messages(c *gin.Context) {
	if h.manager == nil {
		apierrors.ServiceUnavailable(c, "WhatsApp integration is not configured")
		return
	}

	messages := h.manager.Messages()
	if messages == nil {
		messages = []whatsapp.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
