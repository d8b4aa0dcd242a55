package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NotificationSender is the slice of the dispatcher the handler needs.
type NotificationSender interface {
	SendTemplate(ctx context.Context, phone, templateName, language string, ordered []string, keyed map[string]string) (string, error)
	SendUnified(ctx context.Context, phone, body string) (string, error)
}

// WhatsAppHandler exposes the template and unified send endpoints.
type WhatsAppHandler struct {
	dispatcher NotificationSender
	logger     logger.Logger
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(dispatcher NotificationSender, logger logger.Logger) *WhatsAppHandler {
	return &WhatsAppHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Register mounts the messaging routes on the given group.
func (h *WhatsAppHandler) Register(router *gin.RouterGroup) {
	router.POST("/template", h.sendTemplate)
	router.POST("/unified", h.sendUnified)
	router.GET("/ping", h.ping)
}

type sendTemplateRequest struct {
	Phone        string            `json:"phone" binding:"required"`
	Template     string            `json:"template" binding:"required"`
	Language     string            `json:"language"`
	Variables    []string          `json:"variables"`
	VariablesMap map[string]string `json:"variablesMap"`
}

type sendUnifiedRequest struct {
	Phone string `json:"phone" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (h *WhatsAppHandler) sendTemplate(c *gin.Context) {
	var req sendTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := h.dispatcher.SendTemplate(c.Request.Context(), req.Phone, req.Template, req.Language, req.Variables, req.VariablesMap)
	if err != nil {
		h.respondSendError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template sent", "requestId": requestID})
}

func (h *WhatsAppHandler) sendUnified(c *gin.Context) {
	var req sendUnifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID, err := h.dispatcher.SendUnified(c.Request.Context(), req.Phone, req.Body)
	if err != nil {
		h.respondSendError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent", "requestId": requestID})
}

func (h *WhatsAppHandler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

func (h *WhatsAppHandler) respondSendError(c *gin.Context, requestID string, err error) {
	if errors.Is(err, entity.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "requestId": requestID})
		return
	}

	var providerErr *entity.ProviderError
	if errors.As(err, &providerErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "messaging provider error",
			"status":    providerErr.Status,
			"code":      providerErr.Code,
			"requestId": requestID,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "requestId": requestID})
}
