package handler

import (
	"time"

	"unified-messaging-go/internal/apperr"
)

// SendSMSRequest is the outbound send payload for the sms provider; Type
// selects sms or mms and defaults to sms.
type SendSMSRequest struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Type        string   `json:"type"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
	Timestamp   string   `json:"timestamp"`
}

// SendEmailRequest is the outbound send payload for the email provider; the
// message type is implicit.
type SendEmailRequest struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
	Timestamp   string   `json:"timestamp"`
}

// SMSWebhookRequest is an inbound delivery from the sms provider.
type SMSWebhookRequest struct {
	From                string   `json:"from"`
	To                  string   `json:"to"`
	Type                string   `json:"type"`
	MessagingProviderID string   `json:"messaging_provider_id"`
	Body                string   `json:"body"`
	Attachments         []string `json:"attachments"`
	Timestamp           string   `json:"timestamp"`
}

// EmailWebhookRequest is an inbound delivery from the email provider.
type EmailWebhookRequest struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	XillioID    string   `json:"xillio_id"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
	Timestamp   string   `json:"timestamp"`
}

// UpdateStatusRequest transitions a message's delivery state.
type UpdateStatusRequest struct {
	Status       string  `json:"status" binding:"required"`
	ErrorMessage *string `json:"error_message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Database  string            `json:"database"`
	Metrics   map[string]string `json:"metrics,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Code    int                 `json:"code"`
	Fields  []apperr.FieldError `json:"fields,omitempty"`
}
