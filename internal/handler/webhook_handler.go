package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"unified-messaging-go/internal/model"
)

// SMSWebhook ingests an inbound sms/mms delivery. Providers retry deliveries,
// so the same messaging_provider_id may arrive more than once; both calls
// answer with the same stored message.
func (h *Handlers) SMSWebhook(c *gin.Context) {
	var req SMSWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	messageType := model.MessageType(req.Type)
	if req.Type == "" {
		messageType = model.MessageTypeSMS
	}

	resp, err := h.messages.SendMessage(&model.SendMessageRequest{
		ProviderType:      model.ProviderTypeSMS,
		MessageType:       messageType,
		Direction:         model.DirectionInbound,
		From:              req.From,
		To:                req.To,
		Body:              req.Body,
		Attachments:       req.Attachments,
		Timestamp:         parseTimestamp(req.Timestamp),
		ProviderMessageID: optional(req.MessagingProviderID),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// EmailWebhook ingests an inbound email delivery, keyed by xillio_id.
func (h *Handlers) EmailWebhook(c *gin.Context) {
	var req EmailWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c)
		return
	}

	resp, err := h.messages.SendMessage(&model.SendMessageRequest{
		ProviderType:      model.ProviderTypeEmail,
		MessageType:       model.MessageTypeEmail,
		Direction:         model.DirectionInbound,
		From:              req.From,
		To:                req.To,
		Body:              req.Body,
		Attachments:       req.Attachments,
		Timestamp:         parseTimestamp(req.Timestamp),
		ProviderMessageID: optional(req.XillioID),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
