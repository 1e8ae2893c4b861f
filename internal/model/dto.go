package model

import "time"

// SendMessageRequest is the unified ingestion payload for caller-initiated
// sends and provider webhook deliveries alike.
type SendMessageRequest struct {
	ProviderType      ProviderType
	MessageType       MessageType
	Direction         Direction
	From              string
	To                string
	Body              string
	Attachments       []string
	Timestamp         time.Time
	ProviderMessageID *string
}

// MessageResponse is the API-facing shape of a stored message.
type MessageResponse struct {
	ID                string   `json:"id"`
	ConversationID    string   `json:"conversation_id"`
	ProviderType      string   `json:"provider_type"`
	MessageType       string   `json:"message_type"`
	ProviderMessageID *string  `json:"provider_message_id,omitempty"`
	Direction         string   `json:"direction"`
	From              string   `json:"from"`
	To                string   `json:"to"`
	Body              string   `json:"body"`
	Attachments       []string `json:"attachments"`
	Status            string   `json:"status"`
	ErrorMessage      *string  `json:"error_message,omitempty"`
	Timestamp         string   `json:"timestamp"`
	CreatedAt         string   `json:"created_at"`
}

// ConversationResponse is the API-facing shape of a conversation list entry.
type ConversationResponse struct {
	ID            string           `json:"id"`
	Participants  []string         `json:"participants"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
	LastMessageAt string           `json:"last_message_at"`
	MessageCount  *int64           `json:"message_count,omitempty"`
	LastMessage   *MessageResponse `json:"last_message,omitempty"`
}

// ConversationDetailResponse adds the recent message history.
type ConversationDetailResponse struct {
	ConversationResponse
	Messages []MessageResponse `json:"messages"`
}

// Pagination describes the window of a list response.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ConversationListResponse is the paginated conversation listing.
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Pagination    Pagination             `json:"pagination"`
}
