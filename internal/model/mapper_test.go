package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func validMessage() *Message {
	return &Message{
		ID:             "msg-1",
		ConversationID: "conv-1",
		ProviderType:   ProviderTypeSMS,
		MessageType:    MessageTypeSMS,
		Direction:      DirectionOutbound,
		From:           "+12025551234",
		To:             "+12025555678",
		Body:           "hello",
		Status:         MessageStatusPending,
		Timestamp:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:      time.Date(2024, 6, 1, 12, 0, 1, 0, time.UTC),
	}
}

func TestToMessageResponse(t *testing.T) {
	msg := validMessage()
	msg.Attachments = datatypes.JSON(`["https://cdn.example.com/a.jpg"]`)

	resp, err := ToMessageResponse(msg)
	require.NoError(t, err)

	assert.Equal(t, "msg-1", resp.ID)
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.Equal(t, "sms", resp.ProviderType)
	assert.Equal(t, "outbound", resp.Direction)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, resp.Attachments)
	assert.Equal(t, "2024-06-01T12:00:00Z", resp.Timestamp)
	assert.Equal(t, "2024-06-01T12:00:01Z", resp.CreatedAt)
}

func TestToMessageResponseMalformedAttachments(t *testing.T) {
	msg := validMessage()
	msg.Attachments = datatypes.JSON(`{broken`)

	resp, err := ToMessageResponse(msg)
	require.NoError(t, err)
	assert.Nil(t, resp.Attachments)
}

func TestToMessageResponseZeroTimestampDefaultsToNow(t *testing.T) {
	msg := validMessage()
	msg.Timestamp = time.Time{}

	resp, err := ToMessageResponse(msg)
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, 5*time.Second)
}

func TestToMessageResponseRejectsEnumDrift(t *testing.T) {
	cases := map[string]func(*Message){
		"provider_type": func(m *Message) { m.ProviderType = "carrier_pigeon" },
		"message_type":  func(m *Message) { m.MessageType = "fax" },
		"direction":     func(m *Message) { m.Direction = "sideways" },
		"status":        func(m *Message) { m.Status = "lost" },
	}

	for name, mutate := range cases {
		msg := validMessage()
		mutate(msg)
		_, err := ToMessageResponse(msg)
		assert.Error(t, err, "drifted %s should fail loudly", name)
	}
}

func TestToConversationResponse(t *testing.T) {
	conv := &Conversation{
		ID:            "conv-1",
		Participants:  `["+12025551234","+12025555678"]`,
		CreatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		LastMessageAt: time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC),
	}

	resp := ToConversationResponse(conv)
	assert.Equal(t, []string{"+12025551234", "+12025555678"}, resp.Participants)
	assert.Equal(t, "2024-06-02T08:30:00Z", resp.LastMessageAt)
}

func TestToConversationResponseMalformedParticipants(t *testing.T) {
	conv := &Conversation{ID: "conv-1", Participants: "{broken"}
	resp := ToConversationResponse(conv)
	assert.Nil(t, resp.Participants)
}
