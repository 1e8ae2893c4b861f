package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation groups all messages between exactly two normalized contacts.
// Participants holds the serialized participant key (a sorted two-element
// JSON array); its unique index is what makes find-or-create race-safe.
type Conversation struct {
	ID            string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Participants  string    `json:"participants" gorm:"type:varchar(512);not null;uniqueIndex"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	LastMessageAt time.Time `json:"last_message_at"`

	Messages []Message `json:"messages,omitempty" gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
