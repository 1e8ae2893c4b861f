package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message is a single SMS, MMS, or email attached to a conversation. The
// composite unique index over (provider_type, provider_message_id) is the
// idempotency key for retried webhook deliveries.
type Message struct {
	ID                string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	ConversationID    string         `json:"conversation_id" gorm:"type:varchar(36);not null;index"`
	ProviderType      ProviderType   `json:"provider_type" gorm:"type:varchar(16);not null;uniqueIndex:ux_provider_message,priority:1;check:chk_messages_provider_type,provider_type IN ('sms','email')"`
	MessageType       MessageType    `json:"message_type" gorm:"type:varchar(16);not null;check:chk_messages_message_type,message_type IN ('sms','mms','email')"`
	ProviderMessageID *string        `json:"provider_message_id,omitempty" gorm:"type:varchar(255);uniqueIndex:ux_provider_message,priority:2"`
	Direction         Direction      `json:"direction" gorm:"type:varchar(16);not null;check:chk_messages_direction,direction IN ('inbound','outbound')"`
	From              string         `json:"from" gorm:"column:from_contact;type:varchar(255);not null"`
	To                string         `json:"to" gorm:"column:to_contact;type:varchar(255);not null"`
	Body              string         `json:"body" gorm:"type:text"`
	Attachments       datatypes.JSON `json:"attachments,omitempty"`
	Status            MessageStatus  `json:"status" gorm:"type:varchar(16);not null;check:chk_messages_status,status IN ('pending','sent','delivered','failed')"`
	Timestamp         time.Time      `json:"timestamp" gorm:"not null;index"`
	RetryCount        int            `json:"retry_count" gorm:"not null;default:0"`
	ErrorMessage      *string        `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// TableName specifies the table name for Message
func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
