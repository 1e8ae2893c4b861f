package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ToMessageResponse converts a stored message row into its API shape.
// Attachments are parsed defensively: malformed JSON degrades to null.
// An enum value outside its closed set means the stored data has drifted,
// which is a data-integrity failure, not a user-facing error.
func ToMessageResponse(m *Message) (*MessageResponse, error) {
	if !m.ProviderType.Valid() {
		return nil, fmt.Errorf("message %s has unknown provider type %q", m.ID, m.ProviderType)
	}
	if !m.MessageType.Valid() {
		return nil, fmt.Errorf("message %s has unknown message type %q", m.ID, m.MessageType)
	}
	if !m.Direction.Valid() {
		return nil, fmt.Errorf("message %s has unknown direction %q", m.ID, m.Direction)
	}
	if !m.Status.Valid() {
		return nil, fmt.Errorf("message %s has unknown status %q", m.ID, m.Status)
	}

	var attachments []string
	if len(m.Attachments) > 0 {
		if err := json.Unmarshal(m.Attachments, &attachments); err != nil {
			attachments = nil
		}
	}

	return &MessageResponse{
		ID:                m.ID,
		ConversationID:    m.ConversationID,
		ProviderType:      string(m.ProviderType),
		MessageType:       string(m.MessageType),
		ProviderMessageID: m.ProviderMessageID,
		Direction:         string(m.Direction),
		From:              m.From,
		To:                m.To,
		Body:              m.Body,
		Attachments:       attachments,
		Status:            string(m.Status),
		ErrorMessage:      m.ErrorMessage,
		Timestamp:         FormatTimestamp(m.Timestamp),
		CreatedAt:         FormatTimestamp(m.CreatedAt),
	}, nil
}

// ToConversationResponse converts a stored conversation row into its API shape.
func ToConversationResponse(c *Conversation) ConversationResponse {
	var participants []string
	if err := json.Unmarshal([]byte(c.Participants), &participants); err != nil {
		participants = nil
	}

	return ConversationResponse{
		ID:            c.ID,
		Participants:  participants,
		CreatedAt:     FormatTimestamp(c.CreatedAt),
		UpdatedAt:     FormatTimestamp(c.UpdatedAt),
		LastMessageAt: FormatTimestamp(c.LastMessageAt),
	}
}

// FormatTimestamp renders a stored time as RFC3339 UTC, defaulting a missing
// value to now rather than emitting the zero time.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}
