package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unified-messaging-go/internal/model"
)

// SendSMS sends an outbound sms or mms message
func (h *Handlers) SendSMS(c *gin.Context) {
	var req SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	messageType := model.MessageType(req.Type)
	if req.Type == "" {
		messageType = model.MessageTypeSMS
	}

	resp, err := h.messages.SendMessage(&model.SendMessageRequest{
		ProviderType: model.ProviderTypeSMS,
		MessageType:  messageType,
		Direction:    model.DirectionOutbound,
		From:         req.From,
		To:           req.To,
		Body:         req.Body,
		Attachments:  req.Attachments,
		Timestamp:    parseTimestamp(req.Timestamp),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// SendEmail sends an outbound email message
func (h *Handlers) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	resp, err := h.messages.SendMessage(&model.SendMessageRequest{
		ProviderType: model.ProviderTypeEmail,
		MessageType:  model.MessageTypeEmail,
		Direction:    model.DirectionOutbound,
		From:         req.From,
		To:           req.To,
		Body:         req.Body,
		Attachments:  req.Attachments,
		Timestamp:    parseTimestamp(req.Timestamp),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetMessage returns a specific message
func (h *Handlers) GetMessage(c *gin.Context) {
	resp, err := h.messages.GetMessageByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateMessageStatus transitions a message's delivery state
func (h *Handlers) UpdateMessageStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	resp, err := h.messages.UpdateMessageStatus(c.Param("id"), model.MessageStatus(req.Status), req.ErrorMessage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
